package system_healthcheck

import (
	"os"
)

var healthcheckService = &HealthcheckService{
	os.TempDir(),
}
var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
