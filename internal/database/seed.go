package database

import (
	"log"

	"github.com/AidanBoudreau/TimeLink/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	employeeID string
	name       string
	email      string
	password   string
	role       models.Role
}

var defaultUsers = []seedUser{
	{"ADMIN001", "Admin User", "admin@timelink.com", "admin123", models.RoleAdmin},
	{"MGR001", "John Manager", "manager@timelink.com", "manager123", models.RoleManager},
	{"EMP001", "Alice Johnson", "alice@timelink.com", "employee123", models.RoleEmployee},
	{"EMP002", "Bob Smith", "bob@timelink.com", "employee123", models.RoleEmployee},
	{"EMP003", "Carol Davis", "carol@timelink.com", "employee123", models.RoleEmployee},
}

var defaultJobs = []struct {
	number      string
	name        string
	description string
}{
	{"JOB001", "Website Redesign", "Complete redesign of company website"},
	{"JOB002", "Mobile App Development", "Develop iOS and Android apps"},
	{"JOB003", "Database Migration", "Migrate from MySQL to PostgreSQL"},
	{"JOB004", "Security Audit", "Comprehensive security assessment"},
	{"JOB005", "API Integration", "Integrate third-party APIs"},
}

// Seed inserts the default admin, sample users, and sample jobs.
// Safe to run repeatedly; existing records are left alone.
func Seed(db *gorm.DB) error {
	var admin models.User

	for _, su := range defaultUsers {
		var existing models.User
		err := db.Where("employee_id = ?", su.employeeID).First(&existing).Error
		if err == nil {
			if su.role == models.RoleAdmin {
				admin = existing
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		email := su.email
		user := models.User{
			EmployeeID:   su.employeeID,
			Name:         su.name,
			Email:        &email,
			PasswordHash: string(hash),
			Role:         su.role,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		if su.role == models.RoleAdmin {
			admin = user
		}
		log.Printf("Seeded user %s (%s)", su.employeeID, su.role)
	}

	for _, sj := range defaultJobs {
		var existing models.Job
		err := db.Where("job_number = ?", sj.number).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		job := models.Job{
			JobNumber:   sj.number,
			JobName:     sj.name,
			Description: sj.description,
			Status:      models.JobStatusActive,
			CreatedBy:   admin.ID,
		}
		if err := db.Create(&job).Error; err != nil {
			return err
		}
		log.Printf("Seeded job %s (%s)", sj.number, sj.name)
	}

	return nil
}
