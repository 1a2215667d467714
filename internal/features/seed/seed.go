package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	projects_enums "pmtrack/internal/features/projects/enums"
	users_enums "pmtrack/internal/features/users/enums"

	"gopkg.in/yaml.v3"
)

// File is the YAML document accepted by the admin seed command
type File struct {
	Users    []User    `yaml:"users"`
	Projects []Project `yaml:"projects"`
}

type User struct {
	Email      string               `yaml:"email"`
	FullName   string               `yaml:"full_name"`
	Department string               `yaml:"department"`
	Position   string               `yaml:"position"`
	Password   string               `yaml:"password"`
	Role       users_enums.UserRole `yaml:"role"`
}

type Project struct {
	Name        string                       `yaml:"name"`
	Description string                       `yaml:"description"`
	StartDate   string                       `yaml:"start_date"`
	EndDate     string                       `yaml:"end_date"`
	Status      projects_enums.ProjectStatus `yaml:"status"`
	Members     []Member                     `yaml:"members"`
	Delegations []Delegation                 `yaml:"delegations"`
}

type Member struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// Delegation names both sides by email
type Delegation struct {
	Delegate    string `yaml:"delegate"`
	Beneficiary string `yaml:"beneficiary"`
	Role        string `yaml:"role"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if err := file.validate(); err != nil {
		return nil, err
	}

	return &file, nil
}

func (f *File) validate() error {
	emails := make(map[string]struct{}, len(f.Users))

	for i, user := range f.Users {
		email := normalizeEmail(user.Email)
		if email == "" {
			return fmt.Errorf("users[%d]: email is required", i)
		}
		if _, ok := emails[email]; ok {
			return fmt.Errorf("users[%d]: duplicate email %s", i, email)
		}
		if len(user.Password) < 8 {
			return fmt.Errorf("users[%d]: password must have at least 8 characters", i)
		}
		if user.Role != "" && !user.Role.IsValid() {
			return fmt.Errorf("users[%d]: invalid role %q", i, user.Role)
		}

		emails[email] = struct{}{}
	}

	names := make(map[string]struct{}, len(f.Projects))
	for i, project := range f.Projects {
		name := strings.TrimSpace(project.Name)
		if name == "" {
			return fmt.Errorf("projects[%d]: name is required", i)
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("projects[%d]: duplicate name %s", i, name)
		}
		if project.StartDate == "" {
			return fmt.Errorf("projects[%d]: start_date is required", i)
		}

		for j, delegation := range project.Delegations {
			if delegation.Delegate == "" || delegation.Beneficiary == "" {
				return fmt.Errorf("projects[%d].delegations[%d]: delegate and beneficiary are required", i, j)
			}
		}

		names[name] = struct{}{}
	}

	if len(f.Users) == 0 && len(f.Projects) == 0 {
		return errors.New("seed file is empty")
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
