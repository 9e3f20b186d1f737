package roster

import (
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

// PublicHolidays2025 马来西亚（雪兰莪）2025 年公共假期
func PublicHolidays2025() []model.PublicHoliday {
	d := func(month time.Month, day int) time.Time {
		return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
	}
	return []model.PublicHoliday{
		{Date: d(time.March, 31), Name: "Raya Puasa 1"},
		{Date: d(time.April, 1), Name: "Raya Puasa 2"},
		{Date: d(time.April, 2), Name: "Raya Puasa 3 (*ganti Nuzul Quran)"},
		{Date: d(time.May, 1), Name: "Labour Day"},
		{Date: d(time.June, 2), Name: "Agong Birthday"},
		{Date: d(time.June, 7), Name: "Hari Raya Haji Day 1"},
		{Date: d(time.June, 8), Name: "Hari Raya Haji Day 2 (*ganti Maulidur Rasul)"},
		{Date: d(time.June, 27), Name: "Awal Muharam"},
		{Date: d(time.August, 31), Name: "Merdeka Day"},
		{Date: d(time.September, 16), Name: "Hari Malaysia"},
		{Date: d(time.December, 11), Name: "Sultan Selangor's Birthday"},
	}
}
