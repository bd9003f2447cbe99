package domain

import "time"

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"` // 全局唯一，登录查找用 key
	Name       string    `json:"name"`
	IsVerified bool      `json:"isVerified"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session 当前活跃会话（user + token 成对持久化，进程重启后恢复登录态）
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
