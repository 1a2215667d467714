package downdetect

import (
	"pmtrack/internal/cache"
)

var downdetectService = &DowndetectService{
	cache.GetCache(),
}
var downdetectController = &DowndetectController{
	downdetectService,
}

func GetDowndetectController() *DowndetectController {
	return downdetectController
}
