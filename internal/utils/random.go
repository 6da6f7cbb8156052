package utils

import (
	"math/rand"

	"github.com/Azuma86/scheduler/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName(r *rand.Rand) string {
	surname := commonSurnames[r.Intn(len(commonSurnames))]
	nameLength := r.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[r.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateStaffIDFromChineseName 根据中文姓名生成花名册里使用的拼音 ID
func GenerateStaffIDFromChineseName(r *rand.Rand, chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	id := ""

	for _, py := range pinyinArray {
		length := r.Intn(len(py)) + 1
		id += py[:length]
	}

	digitsLength := r.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		id += string(digits[r.Intn(len(digits))])
	}

	return id
}

// GenerateRandomSubset 用 Fisher-Yates 洗牌算法生成一个非空随机子集
func GenerateRandomSubset(r *rand.Rand, roles []domain.Role) []domain.Role {
	rolesCopy := append([]domain.Role{}, roles...)

	for i := len(rolesCopy) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		rolesCopy[i], rolesCopy[j] = rolesCopy[j], rolesCopy[i]
	}

	n := r.Intn(len(rolesCopy)) + 1
	return rolesCopy[:n]
}

// GenerateRandomWindows 为排班期间内的每一天随机生成 0~1 个空闲窗口
// 窗口的起止时刻对齐到半小时，保证样例数据看起来像真实的提交
func GenerateRandomWindows(r *rand.Rand, dates []string) []domain.AvailabilityWindow {
	var windows []domain.AvailabilityWindow
	for _, date := range dates {
		if r.Intn(4) == 0 {
			// 这一天不提交空闲时间
			continue
		}
		start := int32(r.Intn(20)+16) * 30 // 08:00~18:00 之间
		length := int32(r.Intn(16)+8) * 30 // 4~12 小时
		end := start + length
		if end > 24*60 {
			end = 24 * 60
		}
		windows = append(windows, domain.AvailabilityWindow{
			Date:        date,
			StartMinute: start,
			EndMinute:   end,
		})
	}
	return windows
}
