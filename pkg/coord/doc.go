// Package coord maps panel data into normalized drawing space.
//
// # Overview
//
// A Coord is applied when panels are drawn, never during the build: the
// built data keeps its scale-mapped values and the coordinate system
// turns them into [0, 1] panel fractions at render time. Cartesian is
// the linear default, Flip swaps the axes and Trans warps one or both of
// them. Non-linear systems draw paths through Munch, which subdivides
// long segments so they can bend.
package coord
