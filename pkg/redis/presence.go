package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotOnline 用户不在线
var ErrNotOnline = errors.New("用户不在线")

// PresenceData 在线状态数据
type PresenceData struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

// 在线状态相关常量
const (
	PresenceKeyPrefix = "moments:presence:user:" // 用户在线状态key前缀
	OnlineUsersKey    = "moments:online:users"   // 在线用户集合key
	PresenceTTL       = 2 * time.Minute          // 在线状态TTL（2倍心跳周期）
)

// Presence 基于Redis的在线状态记录
type Presence struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPresence 创建在线状态记录器
func NewPresence(client *redis.Client) *Presence {
	return &Presence{client: client, ttl: PresenceTTL}
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)
}

// SetOnline 设置用户在线，带TTL
func (p *Presence) SetOnline(ctx context.Context, userID uint, username string) error {
	data, err := json.Marshal(PresenceData{
		UserID:   userID,
		Username: username,
		LastSeen: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("序列化在线状态失败: %w", err)
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, presenceKey(userID), data, p.ttl)
	pipe.SAdd(ctx, OnlineUsersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("设置用户在线状态失败: %w", err)
	}
	return nil
}

// SetOffline 移除用户在线状态
func (p *Presence) SetOffline(ctx context.Context, userID uint) error {
	pipe := p.client.TxPipeline()
	pipe.Del(ctx, presenceKey(userID))
	pipe.SRem(ctx, OnlineUsersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("删除用户在线状态失败: %w", err)
	}
	return nil
}

// Refresh 刷新用户在线状态（延长TTL）
func (p *Presence) Refresh(ctx context.Context, userID uint) error {
	ok, err := p.client.Expire(ctx, presenceKey(userID), p.ttl).Result()
	if err != nil {
		return fmt.Errorf("刷新用户在线状态失败: %w", err)
	}
	if !ok {
		return ErrNotOnline
	}
	return nil
}

// IsOnline 检查用户是否在线
func (p *Presence) IsOnline(ctx context.Context, userID uint) (bool, error) {
	n, err := p.client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("检查用户在线状态失败: %w", err)
	}
	return n > 0, nil
}

// OnlineUsers 获取在线用户详细信息，TTL 已过期的成员会从集合中清除
func (p *Presence) OnlineUsers(ctx context.Context) ([]PresenceData, error) {
	members, err := p.client.SMembers(ctx, OnlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取在线用户列表失败: %w", err)
	}

	presences := make([]PresenceData, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		data, err := p.client.Get(ctx, presenceKey(uint(id))).Bytes()
		if errors.Is(err, redis.Nil) {
			p.client.SRem(ctx, OnlineUsersKey, member)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("获取用户在线状态失败: %w", err)
		}
		var presence PresenceData
		if err := json.Unmarshal(data, &presence); err != nil {
			continue
		}
		presences = append(presences, presence)
	}
	return presences, nil
}
