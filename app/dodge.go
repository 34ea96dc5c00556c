package app

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"wirespin/gfx"
	"wirespin/hal"
	"wirespin/scene"
)

// Dodge game tuning. Distances are in lane units along the track; a cube at
// track position y sits at z = -y.
var laneX = [3]float32{-1.1, 0, 1.1}

const (
	dodgeObstacles   = 8
	dodgeFirstY      = 6
	dodgeGapMin      = 6
	dodgeGapMax      = 10
	dodgePassedY     = -3
	dodgeFallRate    = 1.5
	dodgeSpeedStep   = 0.1
	dodgeEaseRate    = 5
	dodgeCubeScale   = 0.45
	dodgeHitDistance = 1
)

// Dodge is the asset for the dodge game: a "Player" cube and a row of
// "Obstacle" cubes under one root.
func Dodge() scene.AssetNode {
	cube := func(name string) scene.AssetNode {
		c := Cube()
		c.Name = name
		c.Scale = [3]float32{dodgeCubeScale, dodgeCubeScale, dodgeCubeScale}
		return c
	}
	root := scene.AssetNode{Name: "Dodge"}
	root.Children = append(root.Children, cube("Player"))
	for i := 1; i <= dodgeObstacles; i++ {
		root.Children = append(root.Children, cube(fmt.Sprintf("Obstacle%d", i)))
	}
	return root
}

// DodgeCamera looks down the track from behind the player.
func DodgeCamera() Camera {
	c := DefaultCamera()
	c.Eye = mgl32.Vec3{0, 3, 5}
	c.Target = mgl32.Vec3{0, 0, -4}
	return c
}

type dodgeCube struct {
	node *scene.Node
	x, y float32
}

func (c *dodgeCube) moveTo(x, y float32) {
	c.x, c.y = x, y
	c.node.SetTranslation(mgl32.Vec3{x, 0, -y})
}

func (c *dodgeCube) hits(o *dodgeCube) bool {
	return abs32(c.x-o.x) < dodgeHitDistance && abs32(c.y-o.y) < dodgeHitDistance
}

// dodgeGame drops obstacle cubes down three lanes toward the player. Every
// cube that gets past the player scores a point and speeds the fall up; the
// run ends when the player touches a cube.
type dodgeGame struct {
	root      *scene.Node
	player    dodgeCube
	target    int
	obstacles []dodgeCube

	speed  float32
	spawnY float32
	score  int
	over   bool

	autoplay bool
	rng      *rand.Rand
}

func newDodgeGame(root *scene.Node, seed uint64, autoplay bool) (*dodgeGame, error) {
	g := &dodgeGame{
		root:     root,
		autoplay: autoplay,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	p := root.Find("Player")
	if p == nil {
		return nil, fmt.Errorf("app: dodge: no Player node")
	}
	g.player.node = p
	for i := 1; ; i++ {
		n := root.Find(fmt.Sprintf("Obstacle%d", i))
		if n == nil {
			break
		}
		g.obstacles = append(g.obstacles, dodgeCube{node: n})
	}
	if len(g.obstacles) == 0 {
		return nil, fmt.Errorf("app: dodge: no Obstacle nodes")
	}
	g.player.node.SetColor(gfx.Magenta)
	for i := range g.obstacles {
		g.obstacles[i].node.SetColor(gfx.Cyan)
	}
	g.reset()
	return g, nil
}

// reset starts a new run with the obstacles spread out ahead of the player.
func (g *dodgeGame) reset() {
	g.speed, g.score, g.over = 1, 0, false
	g.target = 1
	g.player.moveTo(laneX[g.target], 0)

	y := float32(dodgeFirstY)
	for i := range g.obstacles {
		g.obstacles[i].moveTo(g.randomLane(), y)
		y += dodgeGapMin + g.rng.Float32()*(dodgeGapMax-dodgeGapMin)
	}
	g.spawnY = y
}

func (g *dodgeGame) randomLane() float32 { return laneX[g.rng.IntN(len(laneX))] }

// key steers the player. Lane changes wrap around; Enter restarts a
// finished run.
func (g *dodgeGame) key(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyLeft:
		g.target = (g.target + len(laneX) - 1) % len(laneX)
	case hal.KeyRight:
		g.target = (g.target + 1) % len(laneX)
	case hal.KeyEnter:
		if g.over {
			g.reset()
		}
	}
}

// advance moves the game forward by dt seconds.
func (g *dodgeGame) advance(dt float32) {
	if g.over {
		return
	}
	for i := range g.obstacles {
		c := &g.obstacles[i]
		y := c.y - g.speed*dt*dodgeFallRate
		if y < dodgePassedY {
			c.moveTo(g.randomLane(), g.spawnY)
			g.score++
			g.speed += dodgeSpeedStep
			continue
		}
		c.moveTo(c.x, y)
	}

	if g.autoplay {
		g.target = g.safestLane()
	}
	ease := min(dt*dodgeEaseRate, 1)
	g.player.moveTo(g.player.x+(laneX[g.target]-g.player.x)*ease, g.player.y)

	for i := range g.obstacles {
		if g.player.hits(&g.obstacles[i]) {
			g.over = true
			return
		}
	}
}

// safestLane picks the lane whose nearest oncoming obstacle is farthest
// away, keeping the current lane on ties.
func (g *dodgeGame) safestLane() int {
	best, bestGap := g.target, g.laneGap(g.target)
	for i := range laneX {
		if gap := g.laneGap(i); gap > bestGap {
			best, bestGap = i, gap
		}
	}
	return best
}

// laneGap is the track distance to the nearest obstacle in lane i that has
// not yet passed the player.
func (g *dodgeGame) laneGap(i int) float32 {
	gap := float32(math.Inf(1))
	for _, c := range g.obstacles {
		if abs32(c.x-laneX[i]) < dodgeHitDistance && c.y > g.player.y-dodgeHitDistance {
			gap = min(gap, c.y-g.player.y)
		}
	}
	return gap
}

func (g *dodgeGame) hudLines() []string {
	lines := []string{fmt.Sprintf("score %d", g.score)}
	if g.over {
		lines = append(lines, "game over - enter restarts")
	}
	return lines
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
