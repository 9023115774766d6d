package cluster

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/geo"
)

// LabelFunc разрешает отображаемую метку по центроиду кластера.
// Неудачный поиск - пустая строка, никогда не фатальная ошибка.
type LabelFunc func(ctx context.Context, centroid domain.Point) string

// RankOptions - параметры ранжирования
type RankOptions struct {
	// Limit - максимум кластеров на выходе; 0 дает пустой результат
	Limit int

	// LabelFilter - подстрока метки без учета регистра; кластеры с
	// пустой меткой отфильтровываются любым непустым фильтром
	LabelFilter string
}

// Rank превращает группы индексов в кластеры: разрешает метки,
// сортирует по убыванию размера (при равенстве - порядок обнаружения),
// фильтрует по метке и обрезает до Limit.
//
// Метки независимы между кластерами, поэтому разрешаются параллельно;
// каждая горутина пишет только в свой кластер. Порядок результата от
// этого не зависит.
func Rank(ctx context.Context, groups [][]int, points []domain.Point, resolve LabelFunc, opts RankOptions) []domain.Cluster {
	clusters := make([]domain.Cluster, len(groups))
	for i, g := range groups {
		members := make([]domain.Point, len(g))
		for j, idx := range g {
			members[j] = points[idx]
		}
		clusters[i] = domain.Cluster{Points: members}
	}

	if resolve != nil {
		var wg sync.WaitGroup
		for i := range clusters {
			wg.Add(1)
			go func(c *domain.Cluster) {
				defer wg.Done()
				c.Label = resolve(ctx, geo.Centroid(c.Points))
			}(&clusters[i])
		}
		wg.Wait()
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size() > clusters[j].Size()
	})

	if filter := strings.ToLower(opts.LabelFilter); filter != "" {
		matched := make([]domain.Cluster, 0, len(clusters))
		for _, c := range clusters {
			if c.Label != "" && strings.Contains(strings.ToLower(c.Label), filter) {
				matched = append(matched, c)
			}
		}
		clusters = matched
	}

	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if len(clusters) > opts.Limit {
		clusters = clusters[:opts.Limit]
	}

	return clusters
}
