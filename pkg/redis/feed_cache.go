package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// 动态流缓存相关常量
const (
	FeedCacheKeyPrefix = "fittrack:feed:" // 动态流首页缓存key前缀
)

// 缓存配置（从配置文件获取）
var (
	FeedCacheTTL = 30 * time.Second // 动态流首页缓存TTL
)

// SetFeedCacheConfig 设置动态流缓存配置
func SetFeedCacheConfig(ttl time.Duration) {
	if ttl > 0 {
		FeedCacheTTL = ttl
	}
}

// SetCachedFeedPage 缓存某用户不带时间过滤的动态流首页
// value 为已经组装好的响应JSON，TTL很短，只为削峰
func SetCachedFeedPage(userID uint, limit int, value interface{}) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d:%d", FeedCacheKeyPrefix, userID, limit)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化动态流缓存失败: %w", err)
	}

	return client.Set(ctx, key, data, FeedCacheTTL).Err()
}

// GetCachedFeedPage 读取某用户的动态流首页缓存
// 未命中时返回 (false, nil)
func GetCachedFeedPage(userID uint, limit int, dest interface{}) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d:%d", FeedCacheKeyPrefix, userID, limit)

	data, err := client.Get(ctx, key).Result()
	if err != nil {
		// 未命中或读取失败都当作未命中处理
		return false, nil
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("反序列化动态流缓存失败: %w", err)
	}
	return true, nil
}

// InvalidateFeedCache 使某些用户的动态流缓存失效
// 新训练入库、好友关系变化时调用，对每个受影响的用户清一遍
func InvalidateFeedCache(userIDs ...uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	for _, userID := range userIDs {
		pattern := fmt.Sprintf("%s%d:*", FeedCacheKeyPrefix, userID)
		keys, err := client.Keys(ctx, pattern).Result()
		if err != nil {
			return fmt.Errorf("查找动态流缓存key失败: %w", err)
		}
		if len(keys) > 0 {
			if err := client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("删除动态流缓存失败: %w", err)
			}
		}
	}
	return nil
}
