package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yaopai/yaopai/pkg/model"
)

// HolidayRepository 公共假期仓储
type HolidayRepository struct {
	db DB
}

// NewHolidayRepository 创建公共假期仓储
func NewHolidayRepository(db DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// Create 新增公共假期（同一天重复添加时覆盖名称）
func (r *HolidayRepository) Create(ctx context.Context, holiday *model.PublicHoliday) error {
	query := `
		INSERT INTO public_holidays (id, date, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), holiday.Date, holiday.Name)
	if err != nil {
		return fmt.Errorf("创建公共假期失败: %w", err)
	}

	return nil
}

// Delete 删除指定日期的公共假期
func (r *HolidayRepository) Delete(ctx context.Context, date time.Time) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM public_holidays WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("删除公共假期失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("公共假期不存在")
	}

	return nil
}

// ListByMonth 查询与目标月份排班网格相关的公共假期
// 网格会向前后各多取一周，查询范围相应放宽
func (r *HolidayRepository) ListByMonth(ctx context.Context, targetMonth time.Time) ([]model.PublicHoliday, error) {
	first := time.Date(targetMonth.Year(), targetMonth.Month(), 1, 0, 0, 0, 0, targetMonth.Location())
	start := first.AddDate(0, 0, -7)
	end := first.AddDate(0, 1, 7)

	query := `
		SELECT date, name FROM public_holidays
		WHERE date >= $1 AND date < $2
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("查询公共假期失败: %w", err)
	}
	defer rows.Close()

	var holidays []model.PublicHoliday
	for rows.Next() {
		var h model.PublicHoliday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("扫描公共假期失败: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// LeaveRepository 年假仓储
type LeaveRepository struct {
	db DB
}

// NewLeaveRepository 创建年假仓储
func NewLeaveRepository(db DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create 新增年假记录（每人每天一条）
func (r *LeaveRepository) Create(ctx context.Context, rec *model.AnnualLeaveRecord) error {
	var tempStaff []byte
	if rec.TempStaff != nil {
		var err error
		tempStaff, err = json.Marshal(rec.TempStaff)
		if err != nil {
			return fmt.Errorf("序列化临时工配置失败: %w", err)
		}
	}

	method := rec.CoverageMethod
	if method == "" {
		method = model.CoverageAutoSwap
	}

	query := `
		INSERT INTO annual_leave (id, staff_id, date, coverage_method, temp_staff, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (staff_id, date) DO UPDATE SET
			coverage_method = EXCLUDED.coverage_method,
			temp_staff = EXCLUDED.temp_staff,
			reason = EXCLUDED.reason
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New(), rec.StaffID, rec.Date, method, tempStaff, rec.Reason,
	)
	if err != nil {
		return fmt.Errorf("创建年假记录失败: %w", err)
	}

	return nil
}

// Delete 删除指定员工指定日期的年假记录
func (r *LeaveRepository) Delete(ctx context.Context, staffID string, date time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM annual_leave WHERE staff_id = $1 AND date = $2`, staffID, date)
	if err != nil {
		return fmt.Errorf("删除年假记录失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("年假记录不存在")
	}

	return nil
}

// List 按过滤器查询年假记录
func (r *LeaveRepository) List(ctx context.Context, filter ListFilter) ([]model.AnnualLeaveRecord, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.StaffID != "" {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", argIndex))
		args = append(args, filter.StaffID)
		argIndex++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIndex))
		args = append(args, filter.StartDate)
		argIndex++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIndex))
		args = append(args, filter.EndDate)
		argIndex++
	}

	query := `SELECT staff_id, date, coverage_method, temp_staff, reason FROM annual_leave`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, staff_id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询年假记录失败: %w", err)
	}
	defer rows.Close()

	var records []model.AnnualLeaveRecord
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// scanLeave 扫描单行年假记录
func scanLeave(row Scanner) (*model.AnnualLeaveRecord, error) {
	var rec model.AnnualLeaveRecord
	var tempStaff []byte

	if err := row.Scan(&rec.StaffID, &rec.Date, &rec.CoverageMethod, &tempStaff, &rec.Reason); err != nil {
		return nil, fmt.Errorf("扫描年假记录失败: %w", err)
	}

	if len(tempStaff) > 0 {
		cfg := &model.TempStaffConfig{}
		if err := json.Unmarshal(tempStaff, cfg); err != nil {
			return nil, fmt.Errorf("解析临时工配置失败: %w", err)
		}
		rec.TempStaff = cfg
	}

	return &rec, nil
}

// SwapRepository 换班仓储
type SwapRepository struct {
	db DB
}

// NewSwapRepository 创建换班仓储
func NewSwapRepository(db DB) *SwapRepository {
	return &SwapRepository{db: db}
}

// Create 新增换班记录，ID 由双方员工与日期确定性生成
func (r *SwapRepository) Create(ctx context.Context, rec *model.SwapRecord) error {
	if rec.ID == "" {
		rec.ID = model.NewSwapID(rec.StaffID1, rec.Date1, rec.StaffID2, rec.Date2)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO shift_swaps (id, staff_id_1, date_1, staff_id_2, date_2, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.StaffID1, rec.Date1, rec.StaffID2, rec.Date2, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建换班记录失败: %w", err)
	}

	return nil
}

// Delete 删除换班记录
func (r *SwapRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shift_swaps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除换班记录失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("换班记录不存在")
	}

	return nil
}

// GetByID 根据ID获取换班记录
func (r *SwapRepository) GetByID(ctx context.Context, id string) (*model.SwapRecord, error) {
	query := `
		SELECT id, staff_id_1, date_1, staff_id_2, date_2, created_at
		FROM shift_swaps WHERE id = $1
	`

	rec := &model.SwapRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.StaffID1, &rec.Date1, &rec.StaffID2, &rec.Date2, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询换班记录失败: %w", err)
	}

	return rec, nil
}

// ListByMonth 查询任一日期落在目标月份网格范围内的换班记录
func (r *SwapRepository) ListByMonth(ctx context.Context, targetMonth time.Time) ([]model.SwapRecord, error) {
	first := time.Date(targetMonth.Year(), targetMonth.Month(), 1, 0, 0, 0, 0, targetMonth.Location())
	start := first.AddDate(0, 0, -7)
	end := first.AddDate(0, 1, 7)

	query := `
		SELECT id, staff_id_1, date_1, staff_id_2, date_2, created_at
		FROM shift_swaps
		WHERE (date_1 >= $1 AND date_1 < $2) OR (date_2 >= $1 AND date_2 < $2)
		ORDER BY date_1
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("查询换班记录失败: %w", err)
	}
	defer rows.Close()

	var records []model.SwapRecord
	for rows.Next() {
		var rec model.SwapRecord
		if err := rows.Scan(&rec.ID, &rec.StaffID1, &rec.Date1, &rec.StaffID2, &rec.Date2, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("扫描换班记录失败: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Records 聚合三类记录仓储，作为排班生成的记录来源
type Records struct {
	holidays *HolidayRepository
	leave    *LeaveRepository
	swaps    *SwapRepository
}

// NewRecords 创建记录聚合仓储
func NewRecords(db DB) *Records {
	return &Records{
		holidays: NewHolidayRepository(db),
		leave:    NewLeaveRepository(db),
		swaps:    NewSwapRepository(db),
	}
}

// HolidayRepo 返回公共假期仓储
func (r *Records) HolidayRepo() *HolidayRepository { return r.holidays }

// LeaveRepo 返回年假仓储
func (r *Records) LeaveRepo() *LeaveRepository { return r.leave }

// SwapRepo 返回换班仓储
func (r *Records) SwapRepo() *SwapRepository { return r.swaps }

// Holidays 查询目标月份网格范围内的公共假期
func (r *Records) Holidays(ctx context.Context, month time.Time) ([]model.PublicHoliday, error) {
	return r.holidays.ListByMonth(ctx, month)
}

// Leave 查询目标月份网格范围内的年假记录
func (r *Records) Leave(ctx context.Context, month time.Time) ([]model.AnnualLeaveRecord, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	start := first.AddDate(0, 0, -7).Format(model.DateLayout)
	end := first.AddDate(0, 1, 7).Format(model.DateLayout)
	return r.leave.List(ctx, ListFilter{StartDate: start, EndDate: end})
}

// Swaps 查询目标月份网格范围内的换班记录
func (r *Records) Swaps(ctx context.Context, month time.Time) ([]model.SwapRecord, error) {
	return r.swaps.ListByMonth(ctx, month)
}
