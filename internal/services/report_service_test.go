package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ReportServiceTestSuite defines the test suite for ReportService
type ReportServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *ReportService
	timesheet *TimesheetService
}

// SetupTest runs before each test
func (suite *ReportServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.TimeEntry{},
		&models.BreakEntry{},
		&models.TaskEntry{},
		&models.Report{},
	)
	suite.Require().NoError(err)

	err = database.AddIndexes(suite.db)
	suite.Require().NoError(err)

	entryRepo := repository.NewTimeEntryRepository(suite.db)
	jobRepo := repository.NewJobRepository(suite.db)
	reportRepo := repository.NewReportRepository(suite.db)
	suite.service = NewReportService(reportRepo, entryRepo)
	suite.timesheet = NewTimesheetService(entryRepo, jobRepo)
}

// TearDownTest runs after each test
func (suite *ReportServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ReportServiceTestSuite) createTestUser(employeeID, name string) *models.User {
	user := &models.User{
		EmployeeID:   employeeID,
		Name:         name,
		PasswordHash: "hashedpassword",
		Role:         models.RoleEmployee,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *ReportServiceTestSuite) workDay(userID uint64, day time.Time, hours int, breakMinutes int) {
	in := day.Add(9 * time.Hour)
	_, err := suite.timesheet.ClockIn(userID, in)
	suite.Require().NoError(err)
	if breakMinutes > 0 {
		_, err = suite.timesheet.StartBreak(userID, in.Add(2*time.Hour))
		suite.Require().NoError(err)
		_, err = suite.timesheet.EndBreak(userID, in.Add(2*time.Hour).Add(time.Duration(breakMinutes)*time.Minute))
		suite.Require().NoError(err)
	}
	_, err = suite.timesheet.ClockOut(userID, in.Add(time.Duration(hours)*time.Hour).Add(time.Duration(breakMinutes)*time.Minute))
	suite.Require().NoError(err)
}

func (suite *ReportServiceTestSuite) TestGenerate_HoursSummary() {
	alice := suite.createTestUser("EMP200", "Alice")
	bob := suite.createTestUser("EMP201", "Bob")
	manager := suite.createTestUser("MGR200", "Morgan")

	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	suite.workDay(alice.ID, day1, 8, 30)
	suite.workDay(alice.ID, day2, 4, 0)
	suite.workDay(bob.ID, day1, 8, 0)

	// Outside the requested range.
	suite.workDay(bob.ID, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 8, 0)

	report, err := suite.service.Generate(GenerateInput{
		DateFrom:    day1,
		DateTo:      day2,
		GeneratedBy: manager.ID,
	})
	suite.Require().NoError(err)
	suite.Equal("hours_summary", report.ReportType)
	suite.Equal(manager.ID, report.GeneratedBy)

	var payload HoursSummaryPayload
	suite.Require().NoError(json.Unmarshal([]byte(report.ReportData), &payload))
	suite.Equal("2025-06-02", payload.DateFrom)
	suite.Equal("2025-06-03", payload.DateTo)
	suite.InDelta(20.0, payload.TotalHours, 0.0001)
	suite.Require().Len(payload.Users, 2)

	byEmployee := make(map[string]UserHoursSummary, len(payload.Users))
	for _, u := range payload.Users {
		byEmployee[u.EmployeeID] = u
	}

	suite.InDelta(12.0, byEmployee["EMP200"].TotalHours, 0.0001)
	suite.Equal(30, byEmployee["EMP200"].BreakMinutes)
	suite.Equal(2, byEmployee["EMP200"].EntryCount)

	suite.InDelta(8.0, byEmployee["EMP201"].TotalHours, 0.0001)
	suite.Equal(1, byEmployee["EMP201"].EntryCount)
}

func (suite *ReportServiceTestSuite) TestGenerate_IgnoresActiveEntries() {
	user := suite.createTestUser("EMP202", "Cara")
	manager := suite.createTestUser("MGR201", "Morgan")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := suite.timesheet.ClockIn(user.ID, day.Add(9*time.Hour))
	suite.Require().NoError(err)

	report, err := suite.service.Generate(GenerateInput{
		DateFrom:    day,
		DateTo:      day,
		GeneratedBy: manager.ID,
	})
	suite.Require().NoError(err)

	var payload HoursSummaryPayload
	suite.Require().NoError(json.Unmarshal([]byte(report.ReportData), &payload))
	suite.Empty(payload.Users)
	suite.Zero(payload.TotalHours)
}

func (suite *ReportServiceTestSuite) TestGenerate_InvalidRange() {
	manager := suite.createTestUser("MGR202", "Morgan")

	_, err := suite.service.Generate(GenerateInput{
		DateFrom:    time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		DateTo:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		GeneratedBy: manager.ID,
	})
	suite.ErrorIs(err, ErrInvalidDateRange)
}

func (suite *ReportServiceTestSuite) TestGenerate_UnknownType() {
	manager := suite.createTestUser("MGR203", "Morgan")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.Generate(GenerateInput{
		ReportType:  "payroll_export",
		DateFrom:    day,
		DateTo:      day,
		GeneratedBy: manager.ID,
	})
	suite.ErrorIs(err, ErrUnknownReportType)
}

func (suite *ReportServiceTestSuite) TestGenerate_SnapshotsAreImmutable() {
	user := suite.createTestUser("EMP203", "Dana")
	manager := suite.createTestUser("MGR204", "Morgan")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	suite.workDay(user.ID, day, 8, 0)

	first, err := suite.service.Generate(GenerateInput{
		DateFrom: day, DateTo: day, GeneratedBy: manager.ID,
	})
	suite.Require().NoError(err)

	suite.workDay(user.ID, day.AddDate(0, 0, 1), 4, 0)

	second, err := suite.service.Generate(GenerateInput{
		DateFrom: day, DateTo: day.AddDate(0, 0, 1), GeneratedBy: manager.ID,
	})
	suite.Require().NoError(err)
	suite.NotEqual(first.ID, second.ID)

	// The first snapshot still reports the old numbers.
	stored, err := suite.service.GetReport(first.ID)
	suite.Require().NoError(err)
	var payload HoursSummaryPayload
	suite.Require().NoError(json.Unmarshal([]byte(stored.ReportData), &payload))
	suite.InDelta(8.0, payload.TotalHours, 0.0001)

	_, total, err := suite.service.ListReports(1, 20)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
}

// TestReportServiceTestSuite runs the test suite
func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
