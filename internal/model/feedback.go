package model

import "time"

// 反馈类型常量
const (
	FeedbackPositive = "POSITIVE"
	FeedbackNegative = "NEGATIVE"
)

// Feedback FAQ用户反馈
// (faq_id, user_ip) 上的唯一索引保证同一IP对同一FAQ至多一条反馈，
// 并发首次提交时由存储层兜底
type Feedback struct {
	ID        string    `gorm:"primaryKey;size:36"`
	FAQID     string    `gorm:"size:36;not null;uniqueIndex:idx_feedback_faq_ip"`
	FAQ       FAQ       `gorm:"foreignKey:FAQID"`
	Type      string    `gorm:"column:feedback_type;size:10;not null"`
	UserIP    string    `gorm:"size:45;uniqueIndex:idx_feedback_faq_ip"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedbacks"
}
