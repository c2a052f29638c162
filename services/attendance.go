package services

import (
	"errors"
	"fmt"
	"time"

	"hr_timekeeping/models"
	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatusAttended     = "Attended"
	StatusAbsent       = "Absent"
	StatusNotCheckedIn = "Not Checked In"
)

// AttendanceService owns the per-employee, per-day attendance ledger and the
// day-boundary policy. All writes lean on the (employee_id, date) unique
// index rather than read-then-write checks, so concurrent check-ins for the
// same day collapse into a single row at the store.
type AttendanceService struct {
	DB            *gorm.DB
	WorkdayOffset time.Duration
	CheckInColor  string
	AbsentColor   string
	Now           func() time.Time
}

func NewAttendanceService(db *gorm.DB, offset time.Duration, checkInColor, absentColor string) *AttendanceService {
	return &AttendanceService{
		DB:            db,
		WorkdayOffset: offset,
		CheckInColor:  checkInColor,
		AbsentColor:   absentColor,
		Now:           time.Now,
	}
}

// Today returns the current calendar date under the fixed company offset.
func (s *AttendanceService) Today() string {
	return WorkdayFor(s.Now(), s.WorkdayOffset)
}

func validDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// RecordAttendance inserts one attendance row. An existing row for the same
// (employee, date) is left untouched and reported as types.ErrConflict.
func (s *AttendanceService) RecordAttendance(employeeID, date, status, color string) (*models.AttendanceRecord, error) {
	if employeeID == "" || date == "" || status == "" || color == "" {
		return nil, fmt.Errorf("%w: employee_id, date, status and color are required", types.ErrValidation)
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", types.ErrValidation)
	}

	record := models.AttendanceRecord{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		Color:      color,
	}

	result := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		utils.Logger.Error("Failed to insert attendance",
			zap.String("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, types.ErrConflict
	}

	return &record, nil
}

// CorrectAttendance updates status and color of an existing row in place.
// This is the only path that can change a record after creation.
func (s *AttendanceService) CorrectAttendance(employeeID, date, status, color string) (*models.AttendanceRecord, error) {
	if employeeID == "" || date == "" || status == "" || color == "" {
		return nil, fmt.Errorf("%w: employee_id, date, status and color are required", types.ErrValidation)
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", types.ErrValidation)
	}

	result := s.DB.Model(&models.AttendanceRecord{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Updates(map[string]interface{}{"status": status, "color": color})
	if result.Error != nil {
		utils.Logger.Error("Failed to update attendance",
			zap.String("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(result.Error))
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, types.ErrNotFound
	}

	var record models.AttendanceRecord
	if err := s.DB.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CheckIn marks the employee attended for today. Calling it again on the
// same workday returns the existing row instead of a conflict, so clients
// can retry freely.
func (s *AttendanceService) CheckIn(employeeID string) (*models.AttendanceRecord, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id is required", types.ErrValidation)
	}

	today := s.Today()
	record, err := s.RecordAttendance(employeeID, today, StatusAttended, s.CheckInColor)
	if errors.Is(err, types.ErrConflict) {
		var existing models.AttendanceRecord
		if err := s.DB.Where("employee_id = ? AND date = ?", employeeID, today).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return record, err
}

// DayStatus is what the schedule screen shows for "right now".
type DayStatus struct {
	Status string `json:"status"`
	Date   string `json:"datetime"`
	Color  string `json:"color,omitempty"`
}

// CurrentStatus reports today's record for the employee, or the
// Not Checked In sentinel paired with today's date when none exists.
func (s *AttendanceService) CurrentStatus(employeeID string) (*DayStatus, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id is required", types.ErrValidation)
	}

	today := s.Today()
	var record models.AttendanceRecord
	err := s.DB.Where("employee_id = ? AND date = ?", employeeID, today).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &DayStatus{Status: StatusNotCheckedIn, Date: today}, nil
	}
	if err != nil {
		utils.Logger.Error("Failed to query current status",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		return nil, err
	}
	return &DayStatus{Status: record.Status, Date: record.Date, Color: record.Color}, nil
}

// History returns the employee and every attendance record in ascending date
// order. An unknown employee is types.ErrNotFound; a known employee with no
// records yet gets an empty list.
func (s *AttendanceService) History(employeeID string) (*models.Employee, []models.AttendanceRecord, error) {
	if employeeID == "" {
		return nil, nil, fmt.Errorf("%w: employee_id is required", types.ErrValidation)
	}

	var employee models.Employee
	if err := s.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, types.ErrNotFound
		}
		utils.Logger.Error("Failed to load employee",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		return nil, nil, err
	}

	var records []models.AttendanceRecord
	if err := s.DB.Where("employee_id = ?", employeeID).Order("date ASC").Find(&records).Error; err != nil {
		utils.Logger.Error("Failed to load attendance history",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		return nil, nil, err
	}

	return &employee, records, nil
}

// DailyAbsenceSweep inserts an Absent row for every employee lacking any
// record on date. Employees already marked for that day, whatever the
// status, are skipped, so the sweep can run any number of times.
func (s *AttendanceService) DailyAbsenceSweep(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("%w: date is required", types.ErrValidation)
	}
	if !validDate(date) {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", types.ErrValidation)
	}

	marked := s.DB.Model(&models.AttendanceRecord{}).
		Select("employee_id").
		Where("date = ?", date)

	var missing []models.Employee
	if err := s.DB.Where("id NOT IN (?)", marked).Find(&missing).Error; err != nil {
		utils.Logger.Error("Failed to find unmarked employees",
			zap.String("date", date),
			zap.Error(err))
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	records := make([]models.AttendanceRecord, len(missing))
	for i, employee := range missing {
		records[i] = models.AttendanceRecord{
			ID:         uuid.New().String(),
			EmployeeID: employee.ID,
			Date:       date,
			Status:     StatusAbsent,
			Color:      s.AbsentColor,
		}
	}

	// The conflict clause covers employees who checked in between the
	// SELECT above and this insert.
	result := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&records)
	if result.Error != nil {
		utils.Logger.Error("Failed to insert absence rows",
			zap.String("date", date),
			zap.Error(result.Error))
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}
