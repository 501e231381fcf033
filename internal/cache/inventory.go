package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ContentKeyPrefix = "content:%s"
	ContentAllKey    = "content:all"
	ProjectKeyPrefix = "project:%s"
	PopularPagesKey  = "analytics:popular:%d"
)

const (
	ContentTTL      = 10 * time.Minute
	ProjectTTL      = 5 * time.Minute
	PopularPagesTTL = 1 * time.Minute
)

func ContentKey(section string) string {
	return fmt.Sprintf(ContentKeyPrefix, section)
}

func ProjectKey(slug string) string {
	return fmt.Sprintf(ProjectKeyPrefix, slug)
}

func PopularKey(limit int) string {
	return fmt.Sprintf(PopularPagesKey, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateContent(ctx context.Context, section string) {
	Invalidate(ctx, ContentKey(section))
	Invalidate(ctx, ContentAllKey)
}

func InvalidateProject(ctx context.Context, slug string) {
	Invalidate(ctx, ProjectKey(slug))
}
