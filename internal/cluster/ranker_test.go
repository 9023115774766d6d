package cluster_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-atlas/internal/cluster"
	"github.com/trip-atlas/internal/domain"
)

// labelsByLat - стаб-резолвер: метка по широте центроида
func labelsByLat(labels map[float64]string) cluster.LabelFunc {
	return func(_ context.Context, centroid domain.Point) string {
		return labels[centroid.Lat]
	}
}

func TestRank_SortsBySizeDescending(t *testing.T) {
	points := []domain.Point{
		{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1.001},
		{Lat: 2, Lon: 2}, {Lat: 2, Lon: 2.001}, {Lat: 2, Lon: 2.002},
	}
	groups := [][]int{{0, 1}, {2, 3, 4}}

	clusters := cluster.Rank(context.Background(), groups, points, nil, cluster.RankOptions{Limit: 10})

	require.Len(t, clusters, 2)
	assert.Equal(t, 3, clusters[0].Size())
	assert.Equal(t, 2, clusters[1].Size())
}

func TestRank_EqualSizesKeepDiscoveryOrder(t *testing.T) {
	points := []domain.Point{
		{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1.001},
		{Lat: 2, Lon: 2}, {Lat: 2, Lon: 2.001},
		{Lat: 3, Lon: 3}, {Lat: 3, Lon: 3.001},
	}
	groups := [][]int{{0, 1}, {2, 3}, {4, 5}}

	clusters := cluster.Rank(context.Background(), groups, points, nil, cluster.RankOptions{Limit: 10})

	require.Len(t, clusters, 3)
	assert.Equal(t, domain.Point{Lat: 1, Lon: 1}, clusters[0].Points[0])
	assert.Equal(t, domain.Point{Lat: 2, Lon: 2}, clusters[1].Points[0])
	assert.Equal(t, domain.Point{Lat: 3, Lon: 3}, clusters[2].Points[0])
}

func TestRank_ResolvesLabels(t *testing.T) {
	points := []domain.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}
	groups := [][]int{{0}, {1}}

	resolve := labelsByLat(map[float64]string{1: "Barcelona", 2: "Paris"})
	clusters := cluster.Rank(context.Background(), groups, points, resolve, cluster.RankOptions{Limit: 10})

	require.Len(t, clusters, 2)
	labels := []string{clusters[0].Label, clusters[1].Label}
	assert.ElementsMatch(t, []string{"Barcelona", "Paris"}, labels)
}

func TestRank_LabelFilterIsCaseInsensitive(t *testing.T) {
	points := []domain.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}}
	groups := [][]int{{0}, {1}, {2}}

	resolve := labelsByLat(map[float64]string{1: "Barcelona", 2: "Paris", 3: ""})
	clusters := cluster.Rank(context.Background(), groups, points, resolve, cluster.RankOptions{
		Limit:       10,
		LabelFilter: "bArCeL",
	})

	require.Len(t, clusters, 1)
	assert.Equal(t, "Barcelona", clusters[0].Label)
}

func TestRank_EmptyLabelExcludedByFilter(t *testing.T) {
	points := []domain.Point{{Lat: 1, Lon: 1}}
	groups := [][]int{{0}}

	// резолвер не нашел локацию - пустая метка, непустой фильтр её отсекает
	resolve := cluster.LabelFunc(func(context.Context, domain.Point) string { return "" })
	clusters := cluster.Rank(context.Background(), groups, points, resolve, cluster.RankOptions{
		Limit:       10,
		LabelFilter: "paris",
	})

	assert.Empty(t, clusters)
}

func TestRank_LimitTruncates(t *testing.T) {
	var points []domain.Point
	var groups [][]int
	for i := 0; i < 5; i++ {
		points = append(points, domain.Point{Lat: float64(i), Lon: float64(i)})
		groups = append(groups, []int{i})
	}

	clusters := cluster.Rank(context.Background(), groups, points, nil, cluster.RankOptions{Limit: 3})
	assert.Len(t, clusters, 3)
}

func TestRank_LimitZeroYieldsEmpty(t *testing.T) {
	points := []domain.Point{{Lat: 1, Lon: 1}}
	groups := [][]int{{0}}

	clusters := cluster.Rank(context.Background(), groups, points, nil, cluster.RankOptions{Limit: 0})
	assert.Empty(t, clusters)
}

func TestRank_NilResolverLeavesLabelsEmpty(t *testing.T) {
	points := []domain.Point{{Lat: 1, Lon: 1}}
	groups := [][]int{{0}}

	clusters := cluster.Rank(context.Background(), groups, points, nil, cluster.RankOptions{Limit: 1})
	require.Len(t, clusters, 1)
	assert.Empty(t, clusters[0].Label)
}

func TestRank_DeterministicUnderConcurrentResolution(t *testing.T) {
	// метки разрешаются параллельно, но порядок результата не зависит
	// от порядка завершения горутин
	var points []domain.Point
	var groups [][]int
	for i := 0; i < 8; i++ {
		group := make([]int, 0, i+1)
		for j := 0; j <= i; j++ {
			points = append(points, domain.Point{Lat: float64(i), Lon: float64(j)})
			group = append(group, len(points)-1)
		}
		groups = append(groups, group)
	}

	resolve := cluster.LabelFunc(func(_ context.Context, c domain.Point) string {
		return fmt.Sprintf("place-%d", int(c.Lat))
	})

	first := cluster.Rank(context.Background(), groups, points, resolve, cluster.RankOptions{Limit: 100})
	second := cluster.Rank(context.Background(), groups, points, resolve, cluster.RankOptions{Limit: 100})
	require.Equal(t, first, second)

	// по убыванию размера
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Size(), first[i].Size())
	}
}
