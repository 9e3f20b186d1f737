// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yaopai/yaopai/internal/metrics"
	"github.com/yaopai/yaopai/pkg/engine"
	"github.com/yaopai/yaopai/pkg/errors"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/stats"
	"github.com/yaopai/yaopai/pkg/validator"
)

// Store 排班记录来源（由 repository 层实现）
type Store interface {
	Holidays(ctx context.Context, month time.Time) ([]model.PublicHoliday, error)
	Leave(ctx context.Context, month time.Time) ([]model.AnnualLeaveRecord, error)
	Swaps(ctx context.Context, month time.Time) ([]model.SwapRecord, error)
}

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	engine  *engine.Engine
	checker *validator.Checker
	store   Store // 可为空：无数据库时只支持请求体内联记录
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(eng *engine.Engine, checker *validator.Checker, store Store) *ScheduleHandler {
	return &ScheduleHandler{engine: eng, checker: checker, store: store}
}

// HolidayInput 公共假期输入
type HolidayInput struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name,omitempty"`
}

// LeaveInput 年假输入（每人每天一条）
type LeaveInput struct {
	StaffID        string                 `json:"staff_id"`
	Date           string                 `json:"date"`
	CoverageMethod string                 `json:"coverage_method,omitempty"` // auto-swap/temp-staff/decide-later
	TempStaff      *model.TempStaffConfig `json:"temp_staff,omitempty"`
	Reason         string                 `json:"reason,omitempty"`
}

// SwapInput 换班输入
type SwapInput struct {
	ID       string `json:"id,omitempty"`
	StaffID1 string `json:"staff_id_1"`
	Date1    string `json:"date_1"`
	StaffID2 string `json:"staff_id_2"`
	Date2    string `json:"date_2"`
}

// GenerateRequest 排班生成请求
type GenerateRequest struct {
	Month    string         `json:"month"` // YYYY-MM
	Holidays []HolidayInput `json:"holidays,omitempty"`
	Leave    []LeaveInput   `json:"leave,omitempty"`
	Swaps    []SwapInput    `json:"swaps,omitempty"`
}

// GenerateResponse 排班生成响应
type GenerateResponse struct {
	Month       string                 `json:"month"`
	Days        []*model.ScheduledDay  `json:"days"`
	WeeklyHours []model.WeeklyHourLog  `json:"weekly_hours"`
	Report      *stats.CoverageReport  `json:"report"`
	Violations  []validator.Violation  `json:"violations,omitempty"`
	Duration    string                 `json:"duration"`
}

// Generate 按请求体内联的记录生成排班
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	month, appErr := parseMonth(req.Month)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	holidays, appErr := parseHolidays(req.Holidays)
	if appErr != nil {
		respondError(w, appErr)
		return
	}
	leave, appErr := parseLeave(req.Leave)
	if appErr != nil {
		respondError(w, appErr)
		return
	}
	swaps, appErr := parseSwaps(req.Swaps)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	h.respondSchedule(w, month, holidays, leave, swaps)
}

// GenerateFromStore 按数据库保存的记录生成排班
// GET /api/v1/schedule?month=YYYY-MM
func (h *ScheduleHandler) GenerateFromStore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}
	if h.store == nil {
		respondError(w, errors.New(errors.CodeInternal, "未配置记录存储"))
		return
	}

	month, appErr := parseMonth(r.URL.Query().Get("month"))
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	holidays, err := h.store.Holidays(r.Context(), month)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取公共假期失败"))
		return
	}
	leave, err := h.store.Leave(r.Context(), month)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取年假记录失败"))
		return
	}
	swaps, err := h.store.Swaps(r.Context(), month)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "读取换班记录失败"))
		return
	}

	h.respondSchedule(w, month, holidays, leave, swaps)
}

// respondSchedule 调用引擎并组装响应
func (h *ScheduleHandler) respondSchedule(w http.ResponseWriter, month time.Time, holidays []model.PublicHoliday, leave []model.AnnualLeaveRecord, swaps []model.SwapRecord) {
	start := time.Now()
	days := h.engine.Generate(month, holidays, leave, swaps)
	duration := time.Since(start)

	monthKey := month.Format("2006-01")
	roster := h.engine.Roster()

	analyzer := stats.NewAnalyzer(roster)
	report := analyzer.Analyze(days, month)

	var violations []validator.Violation
	if h.checker != nil {
		violations = h.checker.Check(days)
	}

	metrics.RecordScheduleGeneration(monthKey, len(violations) == 0, duration)
	metrics.SetResidualBankedHours(monthKey, report.ResidualHours)
	balance := stats.NewBalanceAnalyzer(roster).Analyze(days)
	metrics.SetWorkloadGini(monthKey, "workload", balance.WorkloadGini)
	for _, gap := range report.Gaps {
		if staff := roster.StaffByID(gap.StaffID); staff != nil {
			metrics.RecordCoverageGap(string(staff.Role))
		}
	}

	respondJSON(w, http.StatusOK, GenerateResponse{
		Month:       monthKey,
		Days:        days,
		WeeklyHours: stats.CalculateWeeklyHours(days, roster),
		Report:      report,
		Violations:  violations,
		Duration:    duration.String(),
	})
}

// parseMonth 解析 YYYY-MM 月份参数
func parseMonth(s string) (time.Time, *errors.AppError) {
	if s == "" {
		return time.Time{}, errors.New(errors.CodeInvalidInput, "month 不能为空")
	}
	month, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, errors.InvalidInput("month", "格式应为 YYYY-MM")
	}
	return month, nil
}

// parseDate 解析 YYYY-MM-DD 日期
func parseDate(field, s string) (time.Time, *errors.AppError) {
	date, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, errors.InvalidInput(field, "格式应为 YYYY-MM-DD")
	}
	return date, nil
}

func parseHolidays(inputs []HolidayInput) ([]model.PublicHoliday, *errors.AppError) {
	holidays := make([]model.PublicHoliday, 0, len(inputs))
	for _, in := range inputs {
		date, appErr := parseDate("holidays.date", in.Date)
		if appErr != nil {
			return nil, appErr
		}
		holidays = append(holidays, model.PublicHoliday{Date: date, Name: in.Name})
	}
	return holidays, nil
}

func parseLeave(inputs []LeaveInput) ([]model.AnnualLeaveRecord, *errors.AppError) {
	records := make([]model.AnnualLeaveRecord, 0, len(inputs))
	for _, in := range inputs {
		if in.StaffID == "" {
			return nil, errors.New(errors.CodeInvalidInput, "leave.staff_id 不能为空")
		}
		date, appErr := parseDate("leave.date", in.Date)
		if appErr != nil {
			return nil, appErr
		}
		records = append(records, model.AnnualLeaveRecord{
			StaffID:        in.StaffID,
			Date:           date,
			CoverageMethod: model.CoverageMethod(in.CoverageMethod),
			TempStaff:      in.TempStaff,
			Reason:         in.Reason,
		})
	}
	return records, nil
}

func parseSwaps(inputs []SwapInput) ([]model.SwapRecord, *errors.AppError) {
	records := make([]model.SwapRecord, 0, len(inputs))
	for _, in := range inputs {
		if in.StaffID1 == "" || in.StaffID2 == "" {
			return nil, errors.New(errors.CodeInvalidInput, "swap 双方员工ID不能为空")
		}
		date1, appErr := parseDate("swaps.date_1", in.Date1)
		if appErr != nil {
			return nil, appErr
		}
		date2, appErr := parseDate("swaps.date_2", in.Date2)
		if appErr != nil {
			return nil, appErr
		}
		id := in.ID
		if id == "" {
			id = model.NewSwapID(in.StaffID1, date1, in.StaffID2, date2)
		}
		records = append(records, model.SwapRecord{
			ID:       id,
			StaffID1: in.StaffID1,
			Date1:    date1,
			StaffID2: in.StaffID2,
			Date2:    date2,
		})
	}
	return records, nil
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	body := map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
	}
	if err.Details != "" {
		body["details"] = err.Details
	}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	json.NewEncoder(w).Encode(body)
}
