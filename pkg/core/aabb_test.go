package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAABB_EmptyIsUnionIdentity(t *testing.T) {
	empty := EmptyAABB()
	box := NewAABB(NewVec3(-1, -2, -3), NewVec3(4, 5, 6))

	require.True(t, empty.IsEmpty())
	require.Equal(t, box, empty.Union(box))
	require.Equal(t, box, box.Union(empty))
	require.True(t, empty.Union(empty).IsEmpty())
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0), NewVec3(0.5, 2, 3))

	u := a.Union(b)
	require.Equal(t, NewVec3(-1, 0, 0), u.Min)
	require.Equal(t, NewVec3(1, 2, 3), u.Max)

	// Union is commutative
	require.Equal(t, u, b.Union(a))
}

func TestAABB_UnionOfCompositeEqualsCompositeOfUnions(t *testing.T) {
	children := []AABB{
		NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1)),
		NewAABB(NewVec3(2, -1, 0), NewVec3(3, 0, 2)),
		NewAABB(NewVec3(-5, 0, -1), NewVec3(-4, 1, 0)),
	}

	incremental := EmptyAABB()
	for _, c := range children {
		incremental = incremental.Union(c)
	}

	direct := NewAABB(NewVec3(-5, -1, -1), NewVec3(3, 1, 2))
	require.Equal(t, direct, incremental)
}

func TestAABB_Intersect(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))
	b := NewAABB(NewVec3(1, 1, 1), NewVec3(3, 3, 3))

	i := a.Intersect(b)
	require.Equal(t, NewVec3(1, 1, 1), i.Min)
	require.Equal(t, NewVec3(2, 2, 2), i.Max)

	// Disjoint boxes intersect to the empty box
	c := NewAABB(NewVec3(5, 5, 5), NewVec3(6, 6, 6))
	require.True(t, a.Intersect(c).IsEmpty())
}

func TestAABB_Contains(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))

	tests := []struct {
		name  string
		point Vec3
		want  bool
	}{
		{"interior", NewVec3(0.5, 0.5, 0.5), true},
		{"corner", NewVec3(0, 0, 0), true},
		{"face", NewVec3(1, 0.5, 0.5), true},
		{"outside", NewVec3(1.5, 0.5, 0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, box.Contains(tt.point))
		})
	}
}

func TestAABB_ContainsBox(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	require.True(t, box.ContainsBox(NewAABB(NewVec3(0.5, 0.5, 0.5), NewVec3(1, 1, 1))))
	require.True(t, box.ContainsBox(box))
	require.False(t, box.ContainsBox(NewAABB(NewVec3(1, 1, 1), NewVec3(3, 3, 3))))

	// The empty box is contained in every box
	require.True(t, box.ContainsBox(EmptyAABB()))
}

func TestAABB_CenterAndSize(t *testing.T) {
	box := NewAABB(NewVec3(-1, -2, -3), NewVec3(3, 2, 1))
	require.Equal(t, NewVec3(1, 0, -1), box.Center())
	require.Equal(t, NewVec3(4, 4, 4), box.Size())
}
