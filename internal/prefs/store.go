package prefs

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/console_go_server/internal/model"
)

// 偏好键
const (
	KeyDisplayInCurrency = "display_in_currency"
	KeyCurrentUser       = "current_user"
)

// Preference 持久化的键值偏好项
type Preference struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}

// Store 本地偏好存储，读写都是同步的
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get 读取偏好值，不存在时返回空串
func (s *Store) Get(key string) (string, error) {
	var pref Preference
	err := s.db.Where("key = ?", key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

// Set 写入偏好值，存在则覆盖
func (s *Store) Set(key, value string) error {
	pref := Preference{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Save(&pref).Error
}

// DisplayInCurrency 读取货币展示模式标志，未设置时默认原始模式
func (s *Store) DisplayInCurrency() bool {
	value, err := s.Get(KeyDisplayInCurrency)
	if err != nil {
		return false
	}
	return value == "true"
}

// SetDisplayInCurrency 持久化货币展示模式标志
func (s *Store) SetDisplayInCurrency(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return s.Set(KeyDisplayInCurrency, value)
}

// CurrentUser 读取缓存的当前用户，仅用于分组可见性过滤
// 未缓存或解析失败时返回 nil，调用方按无缓存处理（不过滤退化为全量透传
// 的情况由服务端权限兜底）
func (s *Store) CurrentUser() *model.CurrentUser {
	value, err := s.Get(KeyCurrentUser)
	if err != nil || value == "" {
		return nil
	}
	var user model.CurrentUser
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil
	}
	return &user
}

// SetCurrentUser 缓存当前用户记录
func (s *Store) SetCurrentUser(user *model.CurrentUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.Set(KeyCurrentUser, string(data))
}
