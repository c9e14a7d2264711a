package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outletfc/club-treasury/internal/domain/ranking"
)

func TestToMembers(t *testing.T) {
	members, names := toMembers([]ranking.Entry{
		{PlayerID: "p1", Name: "Capi", TotalPoints: 3},
		{PlayerID: "p2", Name: "Pulpo", TotalPoints: -11},
	})

	require.Len(t, members, 2)
	require.Equal(t, "p1", members[0].Member)
	require.Equal(t, float64(3), members[0].Score)
	require.Equal(t, float64(-11), members[1].Score)
	require.Equal(t, map[string]any{"p1": "Capi", "p2": "Pulpo"}, names)
}

func TestToMembers_Empty(t *testing.T) {
	members, names := toMembers(nil)
	require.Empty(t, members)
	require.Empty(t, names)
}
