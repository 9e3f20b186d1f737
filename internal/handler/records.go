package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yaopai/yaopai/internal/metrics"
	"github.com/yaopai/yaopai/internal/repository"
	"github.com/yaopai/yaopai/pkg/errors"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// RecordsHandler 排班记录维护处理器
type RecordsHandler struct {
	records *repository.Records
	roster  *roster.Roster
}

// NewRecordsHandler 创建记录处理器
func NewRecordsHandler(records *repository.Records, r *roster.Roster) *RecordsHandler {
	return &RecordsHandler{records: records, roster: r}
}

// Holidays 公共假期的增删查
// GET /api/v1/holidays?month=YYYY-MM
// POST /api/v1/holidays {"date":"YYYY-MM-DD","name":"..."}
// DELETE /api/v1/holidays?date=YYYY-MM-DD
func (h *RecordsHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month, appErr := parseMonth(r.URL.Query().Get("month"))
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		holidays, err := h.records.Holidays(r.Context(), month)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询公共假期失败"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"holidays": holidays})

	case http.MethodPost:
		var in HolidayInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
			return
		}
		date, appErr := parseDate("date", in.Date)
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		holiday := &model.PublicHoliday{Date: date, Name: in.Name}
		if err := h.records.HolidayRepo().Create(r.Context(), holiday); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建公共假期失败"))
			return
		}
		respondJSON(w, http.StatusCreated, holiday)

	case http.MethodDelete:
		date, appErr := parseDate("date", r.URL.Query().Get("date"))
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if err := h.records.HolidayRepo().Delete(r.Context(), date); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeNotFound, "公共假期不存在"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})

	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "不支持的请求方法"))
	}
}

// Leave 年假记录的增删查
// GET /api/v1/leave?staff_id=...&start_date=...&end_date=...
// POST /api/v1/leave
// DELETE /api/v1/leave?staff_id=...&date=YYYY-MM-DD
func (h *RecordsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := repository.DefaultListFilter().
			WithStaffID(r.URL.Query().Get("staff_id")).
			WithDateRange(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
		records, err := h.records.LeaveRepo().List(r.Context(), filter)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询年假记录失败"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"leave": records})

	case http.MethodPost:
		var in LeaveInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
			return
		}
		rec, appErr := h.validateLeave(in)
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if err := h.records.LeaveRepo().Create(r.Context(), rec); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建年假记录失败"))
			return
		}
		respondJSON(w, http.StatusCreated, rec)

	case http.MethodDelete:
		staffID := r.URL.Query().Get("staff_id")
		if staffID == "" {
			respondError(w, errors.New(errors.CodeInvalidInput, "staff_id 不能为空"))
			return
		}
		date, appErr := parseDate("date", r.URL.Query().Get("date"))
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if err := h.records.LeaveRepo().Delete(r.Context(), staffID, date); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeNotFound, "年假记录不存在"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})

	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "不支持的请求方法"))
	}
}

// validateLeave 校验年假输入并转换为记录
func (h *RecordsHandler) validateLeave(in LeaveInput) (*model.AnnualLeaveRecord, *errors.AppError) {
	ve := &errors.ValidationErrors{}

	if in.StaffID == "" {
		ve.Add("staff_id", "不能为空")
	} else if h.roster.StaffByID(in.StaffID) == nil {
		ve.Add("staff_id", "员工不存在")
	}

	var date time.Time
	if in.Date == "" {
		ve.Add("date", "不能为空")
	} else {
		var err error
		date, err = time.Parse(model.DateLayout, in.Date)
		if err != nil {
			ve.Add("date", "格式应为 YYYY-MM-DD")
		}
	}

	method := model.CoverageMethod(in.CoverageMethod)
	switch method {
	case "", model.CoverageAutoSwap, model.CoverageTempStaff, model.CoverageDecideLater:
	default:
		ve.Add("coverage_method", "应为 auto-swap、temp-staff 或 decide-later")
	}
	if method == model.CoverageTempStaff && in.TempStaff == nil {
		ve.Add("temp_staff", "选择临时工顶班时必须提供临时工配置")
	}

	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	return &model.AnnualLeaveRecord{
		StaffID:        in.StaffID,
		Date:           date,
		CoverageMethod: method,
		TempStaff:      in.TempStaff,
		Reason:         in.Reason,
	}, nil
}

// Swaps 换班记录的增删查
// GET /api/v1/swaps?month=YYYY-MM
// POST /api/v1/swaps
// DELETE /api/v1/swaps?id=...
func (h *RecordsHandler) Swaps(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month, appErr := parseMonth(r.URL.Query().Get("month"))
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		records, err := h.records.SwapRepo().ListByMonth(r.Context(), month)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询换班记录失败"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"swaps": records})

	case http.MethodPost:
		var in SwapInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
			return
		}
		rec, appErr := h.validateSwap(in)
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if err := h.records.SwapRepo().Create(r.Context(), rec); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "创建换班记录失败"))
			return
		}
		metrics.RecordSwap("recorded")
		respondJSON(w, http.StatusCreated, rec)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			respondError(w, errors.New(errors.CodeInvalidInput, "id 不能为空"))
			return
		}
		if err := h.records.SwapRepo().Delete(r.Context(), id); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeNotFound, "换班记录不存在"))
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})

	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "不支持的请求方法"))
	}
}

// validateSwap 校验换班输入并转换为记录
func (h *RecordsHandler) validateSwap(in SwapInput) (*model.SwapRecord, *errors.AppError) {
	ve := &errors.ValidationErrors{}

	if in.StaffID1 == "" {
		ve.Add("staff_id_1", "不能为空")
	} else if h.roster.StaffByID(in.StaffID1) == nil {
		ve.Add("staff_id_1", "员工不存在")
	}
	if in.StaffID2 == "" {
		ve.Add("staff_id_2", "不能为空")
	} else if h.roster.StaffByID(in.StaffID2) == nil {
		ve.Add("staff_id_2", "员工不存在")
	}
	if in.StaffID1 != "" && in.StaffID1 == in.StaffID2 {
		ve.Add("staff_id_2", "换班双方不能是同一人")
	}

	var date1, date2 time.Time
	var err error
	if date1, err = time.Parse(model.DateLayout, in.Date1); err != nil {
		ve.Add("date_1", "格式应为 YYYY-MM-DD")
	}
	if date2, err = time.Parse(model.DateLayout, in.Date2); err != nil {
		ve.Add("date_2", "格式应为 YYYY-MM-DD")
	}

	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	id := in.ID
	if id == "" {
		id = model.NewSwapID(in.StaffID1, date1, in.StaffID2, date2)
	}
	return &model.SwapRecord{
		ID:       id,
		StaffID1: in.StaffID1,
		Date1:    date1,
		StaffID2: in.StaffID2,
		Date2:    date2,
	}, nil
}

// Roster 返回固定花名册（只读）
// GET /api/v1/roster
func (h *RecordsHandler) Roster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"staff":         h.roster.Staff,
		"patterns":      h.roster.Patterns,
		"holidays_2025": roster.PublicHolidays2025(),
	})
}
