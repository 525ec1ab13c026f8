package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/auth"
	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/dto"
	"github.com/AidanBoudreau/TimeLink/internal/middleware"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TimesheetHandlerTestSuite defines the test suite for TimesheetHandler
type TimesheetHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *auth.TokenService
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TimesheetHandlerTestSuite) SetupTest() {
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

	database.SetDB(suite.db)

	suite.tokens = auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)

	entryRepo := repository.NewTimeEntryRepository(suite.db)
	jobRepo := repository.NewJobRepository(suite.db)
	timesheetService := services.NewTimesheetService(entryRepo, jobRepo)
	handler := NewTimesheetHandler(timesheetService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	employee := suite.router.Group("/api/employee")
	employee.Use(middleware.RequireAuth(suite.tokens))
	{
		employee.GET("/dashboard", handler.Dashboard)
		employee.POST("/clock-in", handler.ClockIn)
		employee.POST("/clock-out", handler.ClockOut)
		employee.POST("/breaks/start", handler.StartBreak)
		employee.POST("/breaks/end", handler.EndBreak)
		employee.POST("/task-entries", handler.AddTaskEntry)
		employee.GET("/time-entries", handler.ListMyEntries)
	}

	manager := suite.router.Group("/api/manager")
	manager.Use(middleware.RequireAuth(suite.tokens), middleware.RequireRole(models.RoleManager, models.RoleAdmin))
	{
		manager.GET("/dashboard", handler.ManagerDashboard)
		manager.GET("/time-entries", handler.ListAllEntries)
		manager.PUT("/time-entries/:id", handler.CorrectEntry)
		manager.DELETE("/time-entries/:id", handler.DeleteEntry)
	}
}

// TearDownTest runs after each test
func (suite *TimesheetHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TimesheetHandlerTestSuite) createTestUser(employeeID string, role models.Role) *models.User {
	user := &models.User{
		EmployeeID:   employeeID,
		Name:         "User " + employeeID,
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TimesheetHandlerTestSuite) bearerFor(user *models.User) string {
	token, err := suite.tokens.GenerateAccessToken(user)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *TimesheetHandlerTestSuite) request(method, url string, payload any, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TimesheetHandlerTestSuite) TestClockInOut_FullCycle() {
	user := suite.createTestUser("EMP300", models.RoleEmployee)
	header := suite.bearerFor(user)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", map[string]string{
		"clock_in": "2025-06-02T09:00:00Z",
	}, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var entry dto.TimeEntryDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	suite.Equal(models.TimeEntryStatusActive, entry.Status)

	w = suite.request(http.MethodPost, "/api/employee/clock-out", map[string]string{
		"clock_out": "2025-06-02T17:00:00Z",
	}, header)
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	suite.Equal(models.TimeEntryStatusClosed, entry.Status)
	suite.Require().NotNil(entry.TotalHours)
	suite.InDelta(8.0, *entry.TotalHours, 0.0001)
}

func (suite *TimesheetHandlerTestSuite) TestClockIn_SecondAttemptConflicts() {
	user := suite.createTestUser("EMP301", models.RoleEmployee)
	header := suite.bearerFor(user)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestClockOut_WithoutActiveEntry() {
	user := suite.createTestUser("EMP302", models.RoleEmployee)

	w := suite.request(http.MethodPost, "/api/employee/clock-out", nil, suite.bearerFor(user))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestBreakCycle() {
	user := suite.createTestUser("EMP303", models.RoleEmployee)
	header := suite.bearerFor(user)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/breaks/start", nil, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	// A second open break is rejected.
	w = suite.request(http.MethodPost, "/api/employee/breaks/start", nil, header)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/breaks/end", nil, header)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/breaks/end", nil, header)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestAddTaskEntry() {
	user := suite.createTestUser("EMP304", models.RoleEmployee)
	header := suite.bearerFor(user)

	job := &models.Job{JobNumber: "JOB300", JobName: "Warehouse remodel", Status: models.JobStatusActive}
	suite.db.Create(job)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/task-entries", map[string]any{
		"job_id":         job.ID,
		"description":    "Installed shelving",
		"materials_used": "Steel brackets",
	}, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var task dto.TaskEntryDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	suite.Equal(job.ID, task.JobID)
}

func (suite *TimesheetHandlerTestSuite) TestDashboard() {
	user := suite.createTestUser("EMP305", models.RoleEmployee)
	header := suite.bearerFor(user)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodGet, "/api/employee/dashboard", nil, header)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		ActiveEntry *dto.TimeEntryDTO `json:"active_entry"`
		WeekHours   float64           `json:"week_hours"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotNil(response.ActiveEntry)
	suite.Equal(models.TimeEntryStatusActive, response.ActiveEntry.Status)
}

func (suite *TimesheetHandlerTestSuite) TestManagerRoutes_ForbiddenForEmployee() {
	user := suite.createTestUser("EMP306", models.RoleEmployee)

	w := suite.request(http.MethodGet, "/api/manager/dashboard", nil, suite.bearerFor(user))
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestManagerDashboard() {
	employee := suite.createTestUser("EMP307", models.RoleEmployee)
	manager := suite.createTestUser("MGR300", models.RoleManager)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, suite.bearerFor(employee))
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodGet, "/api/manager/dashboard", nil, suite.bearerFor(manager))
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		ClockedInCount int64 `json:"clocked_in_count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.ClockedInCount)
}

func (suite *TimesheetHandlerTestSuite) TestCorrectEntry() {
	employee := suite.createTestUser("EMP308", models.RoleEmployee)
	manager := suite.createTestUser("MGR301", models.RoleManager)
	employeeHeader := suite.bearerFor(employee)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", map[string]string{
		"clock_in": "2025-06-02T09:00:00Z",
	}, employeeHeader)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/employee/clock-out", map[string]string{
		"clock_out": "2025-06-02T17:00:00Z",
	}, employeeHeader)
	suite.Require().Equal(http.StatusOK, w.Code)

	var entry dto.TimeEntryDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))

	url := fmt.Sprintf("/api/manager/time-entries/%d", entry.ID)
	w = suite.request(http.MethodPut, url, map[string]any{
		"clock_out": "2025-06-02T18:00:00Z",
		"reason":    "Forgot to clock out before leaving site",
	}, suite.bearerFor(manager))
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	suite.Equal(models.TimeEntryStatusModified, entry.Status)
	suite.Require().NotNil(entry.TotalHours)
	suite.InDelta(9.0, *entry.TotalHours, 0.0001)
}

func (suite *TimesheetHandlerTestSuite) TestCorrectEntry_MissingReason() {
	employee := suite.createTestUser("EMP309", models.RoleEmployee)
	manager := suite.createTestUser("MGR302", models.RoleManager)
	employeeHeader := suite.bearerFor(employee)

	w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, employeeHeader)
	suite.Require().Equal(http.StatusCreated, w.Code)
	w = suite.request(http.MethodPost, "/api/employee/clock-out", nil, employeeHeader)
	suite.Require().Equal(http.StatusOK, w.Code)

	var entry dto.TimeEntryDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))

	url := fmt.Sprintf("/api/manager/time-entries/%d", entry.ID)
	w = suite.request(http.MethodPut, url, map[string]any{
		"clock_out": "2025-06-02T18:00:00Z",
	}, suite.bearerFor(manager))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TimesheetHandlerTestSuite) TestListAllEntries_FilterByUser() {
	alice := suite.createTestUser("EMP310", models.RoleEmployee)
	bob := suite.createTestUser("EMP311", models.RoleEmployee)
	manager := suite.createTestUser("MGR303", models.RoleManager)

	for _, u := range []*models.User{alice, bob} {
		header := suite.bearerFor(u)
		w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
		suite.Require().Equal(http.StatusCreated, w.Code)
		w = suite.request(http.MethodPost, "/api/employee/clock-out", nil, header)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	url := fmt.Sprintf("/api/manager/time-entries?user_id=%d", alice.ID)
	w := suite.request(http.MethodGet, url, nil, suite.bearerFor(manager))
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TimeEntryListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.TotalCount)
	suite.Require().Len(response.Entries, 1)
	suite.Equal(alice.ID, response.Entries[0].UserID)
}

func (suite *TimesheetHandlerTestSuite) TestListMyEntries_OnlyOwnEntries() {
	alice := suite.createTestUser("EMP312", models.RoleEmployee)
	bob := suite.createTestUser("EMP313", models.RoleEmployee)

	for _, u := range []*models.User{alice, bob} {
		header := suite.bearerFor(u)
		w := suite.request(http.MethodPost, "/api/employee/clock-in", nil, header)
		suite.Require().Equal(http.StatusCreated, w.Code)
		w = suite.request(http.MethodPost, "/api/employee/clock-out", nil, header)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	w := suite.request(http.MethodGet, "/api/employee/time-entries", nil, suite.bearerFor(alice))
	suite.Require().Equal(http.StatusOK, w.Code)

	var response dto.TimeEntryListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(int64(1), response.TotalCount)
	suite.Require().Len(response.Entries, 1)
	suite.Equal(alice.ID, response.Entries[0].UserID)
}

// TestTimesheetHandlerTestSuite runs the test suite
func TestTimesheetHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TimesheetHandlerTestSuite))
}
