// Package model 定义药房排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout 日期格式 (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// ClockLayout 时钟格式 (HH:MM)
const ClockLayout = "15:04"

// Role 员工角色
type Role string

const (
	RolePharmacist Role = "Pharmacist"           // 药剂师
	RoleAssistant  Role = "Assistant Pharmacist" // 药剂师助理
)

// EventType 员工某天的事件类型
type EventType string

const (
	EventShift EventType = "Shift" // 正常上班
	EventAL    EventType = "AL"    // 年假
	EventPH    EventType = "PH"    // 公共假期（班次时数入账）
	EventOFF   EventType = "OFF"   // 休息日
)

// BaseModel 基础模型（存储记录通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateKey 返回日期的规范字符串键 (YYYY-MM-DD)
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay 检查两个时间是否为同一天（忽略时分秒与时区偏移内的差异）
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
