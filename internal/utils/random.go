package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomDriver(password string, emailDomainName string) (*domain.Driver, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	driver := &domain.Driver{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleDriver,
	}

	return driver, nil
}

var (
	jobTitles = []string{"新车交付", "门店调拨", "试驾车回收", "维修取车", "拍卖场提车"}
	companies = []string{"华南车行", "广汽经销商", "城市租车", "二手车中心", ""}
	vehicles  = []string{"Model Y", "Camry", "Civic", "F-150", "Sienna", ""}
)

// GenerateRandomJob 生成一个分配给 driverID 的进行中任务，约五分之一没有距离
func GenerateRandomJob(driverID int64) *domain.Job {
	job := &domain.Job{
		Status:   domain.ActiveJobStatuses[rand.Intn(len(domain.ActiveJobStatuses))],
		Title:    fmt.Sprintf("%s #%03d", jobTitles[rand.Intn(len(jobTitles))], rand.Intn(1000)),
		Company:  companies[rand.Intn(len(companies))],
		Vehicle:  vehicles[rand.Intn(len(vehicles))],
		DriverID: &driverID,
	}

	if rand.Intn(5) != 0 {
		distance := float64(rand.Intn(4000)) / 10
		job.Distance = &distance
	}

	return job
}
