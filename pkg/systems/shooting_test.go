package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/shooterboi/pkg/components"
	"github.com/decker502/shooterboi/pkg/config"
	"github.com/decker502/shooterboi/pkg/ecs"
	"github.com/decker502/shooterboi/pkg/input"
	"github.com/decker502/shooterboi/pkg/physics"
	"github.com/decker502/shooterboi/pkg/render"
)

func newScene() (*ecs.EntityManager, *physics.World, *render.Camera) {
	camera := render.NewCamera()
	camera.Position = mgl32.Vec3{}
	return ecs.NewEntityManager(), physics.NewWorld(), camera
}

func newTestGun() *Gun {
	return NewGun(config.DefaultGameplayConfig().Shoot)
}

func TestGunCooldown(t *testing.T) {
	gun := newTestGun()

	assert.False(t, gun.TryFire(false), "not pressed")
	require.True(t, gun.TryFire(true))
	assert.False(t, gun.TryFire(true), "cooling down")

	gun.Update(0.2)
	assert.False(t, gun.TryFire(true))
	gun.Update(0.2)
	assert.True(t, gun.TryFire(true))
}

func TestGunRecoilKick(t *testing.T) {
	gun := newTestGun()
	assert.Zero(t, gun.FovKick())

	require.True(t, gun.TryFire(true))
	gun.Update(0.05)
	assert.InDelta(t, -mgl32.DegToRad(20), gun.FovKick(), 1e-4, "peak after forward phase")

	var info render.RenderingInfo
	gun.ApplyRecoil(&info)
	assert.Equal(t, gun.FovKick(), info.FovShootAnim[1])

	gun.Update(0.25)
	assert.InDelta(t, 0, gun.FovKick(), 1e-4)
}

func TestResolveShotHitsTarget(t *testing.T) {
	em, w, camera := newScene()
	id := SpawnTarget(em, w, mgl32.Vec3{0, 0, -5}, components.NewTarget(nil, components.Patrol{}))
	w.UpdateQueryPipeline()

	var hitID ecs.EntityID
	missed := false
	kind := ResolveShot(em, w, newTestGun(), camera, ShotHooks{
		Miss: func() { missed = true },
		Target: func(id ecs.EntityID, target *components.Target) {
			hitID = id
			target.TryShoot()
		},
	})

	assert.Equal(t, ShotTarget, kind)
	assert.Equal(t, id, hitID)
	assert.False(t, missed)
	assert.True(t, ecs.MustGetComponent[*components.Target](em, id).IsShot())
}

func TestResolveShotMisses(t *testing.T) {
	em, w, camera := newScene()
	SpawnTarget(em, w, mgl32.Vec3{5, 0, -5}, components.NewTarget(nil, components.Patrol{}))
	SpawnWall(em, w, "Wall", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1, 1, 1})
	w.UpdateQueryPipeline()

	misses := 0
	hooks := ShotHooks{Miss: func() { misses++ }}
	assert.Equal(t, ShotMissed, ResolveShot(em, w, newTestGun(), camera, hooks))

	camera.SetYawPitch(90, 0)
	assert.Equal(t, ShotOther, ResolveShot(em, w, newTestGun(), camera, hooks), "wall behind the player")
	assert.Equal(t, 2, misses)
}

func TestResolveShotWithoutHookCountsAsMiss(t *testing.T) {
	em, w, camera := newScene()
	SpawnGunman(em, w, mgl32.Vec3{0, 0, -5}, components.NewGunman(nil, components.DefaultGunmanConfig()))
	w.UpdateQueryPipeline()

	missed := false
	kind := ResolveShot(em, w, newTestGun(), camera, ShotHooks{Miss: func() { missed = true }})
	assert.Equal(t, ShotGunman, kind)
	assert.True(t, missed)
}

func TestResolveShotIgnoresPlayer(t *testing.T) {
	em, w, camera := newScene()
	SetupPlayer(w, mgl32.Vec3{})
	w.UpdateQueryPipeline()

	// 射线起点在相机前方 1 处，已在玩家胶囊体之外
	assert.Equal(t, ShotMissed, ResolveShot(em, w, newTestGun(), camera, ShotHooks{}))
}

func TestTargetSystemRemovesShotAndExpiredTargets(t *testing.T) {
	em, w, _ := newScene()
	targets := NewTargetSystem(em, w)

	shot := SpawnTarget(em, w, mgl32.Vec3{0, 1, -5}, components.NewTarget(nil, components.Patrol{}))
	SpawnTarget(em, w, mgl32.Vec3{1, 1, -5}, components.NewTargetWithLifetime(1, nil, components.Patrol{}))
	SpawnTarget(em, w, mgl32.Vec3{2, 1, -5}, components.NewTarget(nil, components.Patrol{}))
	require.Equal(t, 3, targets.Count())

	require.True(t, ecs.MustGetComponent[*components.Target](em, shot).TryShoot())

	removed := targets.Update(0.5)
	assert.Equal(t, TargetRemoval{Shot: 1}, removed)
	assert.Equal(t, 2, targets.Count())
	assert.True(t, em.IsAlive(shot), "entity removal is deferred")

	em.RemoveMarkedEntities()
	assert.False(t, em.IsAlive(shot))

	removed = targets.Update(0.6)
	assert.Equal(t, TargetRemoval{Expired: 1}, removed)
	em.RemoveMarkedEntities()
	assert.Equal(t, 1, targets.Count())
	assert.Equal(t, 1, w.ColliderCount())
}

func TestTargetSystemMoveVisibleToSameFrameShot(t *testing.T) {
	em, w, camera := newScene()
	targets := NewTargetSystem(em, w)
	// 先朝 B 移动，一帧内走完 5 个单位停在准星正前方
	patrol := components.LinearPatrol(mgl32.Vec3{10, 0, -5}, mgl32.Vec3{0, 0, -5})
	id := SpawnTarget(em, w, mgl32.Vec3{5, 0, -5}, components.NewTarget(nil, patrol))
	w.UpdateQueryPipeline()

	targets.Update(5 / components.TargetLinearSpeed)
	pos, ok := w.ColliderTranslation(ecs.MustGetComponent[*components.Collider](em, id).Handle)
	require.True(t, ok)
	require.InDelta(t, 0, pos.X(), 1e-4)

	var hitID ecs.EntityID
	kind := ResolveShot(em, w, newTestGun(), camera, ShotHooks{
		Target: func(id ecs.EntityID, _ *components.Target) { hitID = id },
	})
	assert.Equal(t, ShotTarget, kind)
	assert.Equal(t, id, hitID)
}

func TestTargetSystemMovesPatrollingTargets(t *testing.T) {
	em, w, _ := newScene()
	targets := NewTargetSystem(em, w)

	a, b := mgl32.Vec3{0, 1, -5}, mgl32.Vec3{4, 1, -5}
	id := SpawnTarget(em, w, a, components.NewTarget(nil, components.LinearPatrol(a, b)))
	targets.Update(0.1)

	handle := ecs.MustGetComponent[*components.Collider](em, id).Handle
	pos, ok := w.ColliderTranslation(handle)
	require.True(t, ok)
	assert.Greater(t, pos.X(), float32(0))

	queue := render.NewRenderQueue()
	targets.Enqueue(queue)
	require.Equal(t, 1, queue.DynamicLen())
	objects, n := queue.ObjectsAndActiveLen(nil)
	require.Equal(t, 1, n)
	assert.Equal(t, render.ShapeSphere, objects[0].Shape)
	assert.Equal(t, render.MaterialTarget, objects[0].Materials[0])
	assert.Equal(t, float32(components.TargetRadius), objects[0].ShapeData1[0])
	assert.Equal(t, pos, objects[0].Position)
}

func TestGunmanShootsBullets(t *testing.T) {
	em, w, _ := newScene()
	cfg := components.DefaultGunmanConfig()
	cfg.WalkSpeed = 0
	rng := rand.New(rand.NewPCG(1, 2))
	gunmen := NewGunmanSystem(em, w, rng)
	bullets := NewBulletSystem(em, w, 100)

	player := mgl32.Vec3{0, 0, -10}
	SpawnGunman(em, w, mgl32.Vec3{}, components.NewGunman(rng, cfg))

	shots := 0
	for i := 0; i < 120 && shots == 0; i++ {
		shots += gunmen.Update(1.0/60, player)
	}
	require.Equal(t, 1, shots, "gunman should fire within two seconds")
	assert.Equal(t, 1, bullets.Count())

	bulletID := ecs.GetEntitiesWith1[*components.Bullet](em)[0]
	rb := rigidBodyOf(em, w, bulletID)
	assert.InDelta(t, 1, rb.Translation().Len(), 1e-3, "bullet spawns one unit ahead")
	assert.InDelta(t, components.BulletSpeed, rb.Linvel().Len(), 1e-3)
	assert.Less(t, rb.Linvel().Z(), float32(0), "bullet flies toward the player")

	queue := render.NewRenderQueue()
	gunmen.Enqueue(queue)
	bullets.Enqueue(queue)
	objects, n := queue.ObjectsAndActiveLen(nil)
	require.Equal(t, 2, n)
	assert.Equal(t, render.ShapeGunman, objects[0].Shape)
	assert.Equal(t, render.MaterialBlack, objects[0].Materials[1])
	assert.Equal(t, render.ShapeSphere, objects[1].Shape)
	assert.Equal(t, render.MaterialBlack, objects[1].Materials[0])
}

func TestBulletHitsPlayer(t *testing.T) {
	em, w, _ := newScene()
	bullets := NewBulletSystem(em, w, 100)

	SetupPlayer(w, mgl32.Vec3{0, 0, -3})
	id := SpawnBullet(em, w, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})

	hitTaken := 0
	for i := 0; i < 10; i++ {
		w.Step()
		hitTaken += bullets.Dispose()
	}
	assert.Equal(t, 1, hitTaken)
	assert.Zero(t, bullets.Count())

	em.RemoveMarkedEntities()
	assert.False(t, em.IsAlive(id))
}

func TestBulletHitsWallWithoutDamage(t *testing.T) {
	em, w, _ := newScene()
	bullets := NewBulletSystem(em, w, 100)

	SpawnWall(em, w, "Wall", mgl32.Vec3{0, 0, -3}, mgl32.Vec3{2, 2, 0.5})
	SpawnBullet(em, w, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})

	hitTaken := 0
	for i := 0; i < 10; i++ {
		w.Step()
		hitTaken += bullets.Dispose()
	}
	assert.Zero(t, hitTaken)
	assert.Zero(t, bullets.Count())
}

func TestBulletRemovedOutOfRange(t *testing.T) {
	em, w, _ := newScene()
	bullets := NewBulletSystem(em, w, 2)

	SpawnBullet(em, w, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.Zero(t, bullets.Update())

	w.Step()
	w.Step()
	w.Step()
	assert.Equal(t, 1, bullets.Update())
	assert.Zero(t, bullets.Count())
}

func TestSwordmanStrikesPlayer(t *testing.T) {
	em, w, _ := newScene()
	swordmen := NewSwordmanSystem(em, w)

	player := mgl32.Vec3{0, 0, -1}
	SetupPlayer(w, player)
	id := SpawnSwordman(em, w, mgl32.Vec3{0, 0, -0.7}, components.NewSwordman())
	require.Len(t, rigidBodyOf(em, w, id).Colliders(), 5)

	hitTaken := 0
	for i := 0; i < 60; i++ {
		w.UpdateQueryPipeline()
		hitTaken += swordmen.Update(1.0/60, player)
	}
	assert.GreaterOrEqual(t, hitTaken, 1)

	queue := render.NewRenderQueue()
	swordmen.Enqueue(queue)
	objects, n := queue.ObjectsAndActiveLen(nil)
	require.Equal(t, 1, n)
	assert.Equal(t, render.ShapeSwordman, objects[0].Shape)
	assert.Equal(t, float32(components.SwordmanScale), objects[0].Scale)
	assert.Equal(t, render.MaterialGreen, objects[0].Materials[1])
}

func TestSwordmanChasesPlayer(t *testing.T) {
	em, w, _ := newScene()
	swordmen := NewSwordmanSystem(em, w)
	id := SpawnSwordman(em, w, mgl32.Vec3{0, 2.5, -10}, components.NewSwordman())

	start := rigidBodyOf(em, w, id).Translation()
	swordmen.Update(0.5, mgl32.Vec3{0, 1, 0})
	end := rigidBodyOf(em, w, id).Translation()
	assert.Greater(t, end.Z(), start.Z())
	assert.Equal(t, start.Y(), end.Y())
}

func TestWallsEnqueueStatic(t *testing.T) {
	em, w, _ := newScene()
	SpawnWall(em, w, "Ground", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{20, 1, 20})
	walls := SpawnArenaWalls(em, w, ArenaSize{
		Center: mgl32.Vec3{0, 1, 0}, HalfWidth: 10, HalfDepth: 10, WallHeight: 4, Thickness: 0.5,
	})
	require.Len(t, walls, 4)

	queue := render.NewRenderQueue()
	assert.Equal(t, 4, EnqueueWalls(em, w, queue, "Wall", render.MaterialStoneWall))
	assert.Equal(t, 1, EnqueueWalls(em, w, queue, "Ground", render.MaterialChecker))
	assert.Equal(t, 5, queue.StaticLen())

	objects, n := queue.ObjectsAndActiveLen(nil)
	require.Equal(t, 5, n)
	assert.Equal(t, render.ShapeBox, objects[0].Shape)
	assert.Equal(t, render.MaterialStoneWall, objects[0].Materials[0])
	assert.Equal(t, float32(3), objects[0].Position.Y(), "walls stand on the ground")
}

func TestPlayerMovesRelativeToCamera(t *testing.T) {
	_, w, camera := newScene()
	body := SetupPlayer(w, mgl32.Vec3{0, 1, 0})
	player := NewPlayerSystem(w, body, camera, 5)
	player.SyncCamera()
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, camera.Position)

	in := input.NewSnapshot()
	in.PressKey(ebiten.KeyW, true)
	pos := player.Update(1, in)
	assert.InDelta(t, -5, pos.Z(), 1e-4, "default camera faces -Z")

	in.Clear()
	in.PressKey(ebiten.KeyA, true)
	in.PressKey(ebiten.KeyD, true)
	pos = player.Update(1, in)
	assert.InDelta(t, -5, pos.X(), 1e-4, "A wins over D")
	assert.Equal(t, pos, camera.Position)
}
