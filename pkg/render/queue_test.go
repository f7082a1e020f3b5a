package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visibleFrustum() *Frustum {
	cam := NewCamera()
	cam.Position = mgl32.Vec3{}
	f := cam.Frustum()
	return &f
}

func TestQueueStaticBeforeDynamic(t *testing.T) {
	q := NewRenderQueue()

	d := q.Next().Data()
	d.Shape = ShapeSphere
	s := q.NextStatic().Data()
	s.Shape = ShapeBox

	out, n := q.ObjectsAndActiveLen(visibleFrustum())
	require.Equal(t, 2, n)
	assert.Equal(t, ShapeBox, out[0].Shape)
	assert.Equal(t, ShapeSphere, out[1].Shape)
}

func TestQueueDynamicClearedAfterExtraction(t *testing.T) {
	q := NewRenderQueue()
	q.NextStatic()
	q.Next()
	q.Next()

	_, n := q.ObjectsAndActiveLen(visibleFrustum())
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, q.DynamicLen())
	assert.Equal(t, 1, q.StaticLen())

	_, n = q.ObjectsAndActiveLen(visibleFrustum())
	assert.Equal(t, 1, n)
}

func TestQueueTruncatesAtQueueSize(t *testing.T) {
	q := NewRenderQueue()
	for i := 0; i < QueueSize+15; i++ {
		q.Next().Data().ShapeData1 = mgl32.Vec4{float32(i)}
	}

	out, n := q.ObjectsAndActiveLen(visibleFrustum())
	require.Equal(t, QueueSize, n)
	assert.Equal(t, float32(QueueSize-1), out[QueueSize-1].ShapeData1.X())
}

func TestQueueCullsInvisible(t *testing.T) {
	q := NewRenderQueue()

	behind := q.Next()
	behind.Data().Position = mgl32.Vec3{0, 0, 50}
	behind.Data().Shape = ShapeSphere
	behind.Data().ShapeData1 = mgl32.Vec4{0.5}
	behind.FitBound()

	ahead := q.Next()
	ahead.Data().Position = mgl32.Vec3{0, 0, -5}
	ahead.Data().Shape = ShapeSphere
	ahead.Data().ShapeData1 = mgl32.Vec4{0.5}
	ahead.FitBound()

	out, n := q.ObjectsAndActiveLen(visibleFrustum())
	require.Equal(t, 1, n)
	assert.Equal(t, float32(-5), out[0].Position.Z())
}

func TestQueueClear(t *testing.T) {
	q := NewRenderQueue()
	q.NextStatic()
	q.Next()
	q.Clear()

	assert.Equal(t, 0, q.StaticLen())
	assert.Equal(t, 0, q.DynamicLen())
}

func TestBoundingSphereRadius(t *testing.T) {
	d := NewRenderQueueData()
	assert.False(t, d.BoundingSphereRadius().HasSphere)

	d.Shape = ShapeSphere
	d.ShapeData1 = mgl32.Vec4{2}
	d.Scale = 0.5
	assert.InDelta(t, 1.0, d.BoundingSphereRadius().Radius, 1e-6)

	d.Shape = ShapeGunman
	assert.InDelta(t, 3.0, d.BoundingSphereRadius().Radius, 1e-6)
}

type recordingBackend struct {
	frames  int
	objects int
	err     error
	resized int
}

func (b *recordingBackend) Resize(int, int, float64) { b.resized++ }

func (b *recordingBackend) Render(_ RenderingInfo, objects []RenderQueueData) error {
	b.frames++
	b.objects = len(objects)
	return b.err
}

func TestRendererSkipsGameWhenDisabled(t *testing.T) {
	backend := &recordingBackend{}
	r := NewRenderer(backend, 800, 600)
	r.Queue.Next()

	require.NoError(t, r.Render(1))
	assert.Equal(t, 0, backend.objects)
	assert.Equal(t, 0, r.Queue.DynamicLen())

	r.RenderGame = true
	r.Queue.Next()
	require.NoError(t, r.Render(2))
	assert.Equal(t, 1, backend.objects)
	assert.Equal(t, uint32(1), r.Info.QueueCount)
}

func TestRendererWrapsBackendErrors(t *testing.T) {
	backend := &recordingBackend{err: ErrSurfaceLost}
	r := NewRenderer(backend, 800, 600)

	err := r.Render(0)
	require.Error(t, err)
	assert.True(t, IsRecoverable(err))
	assert.False(t, IsFatal(err))

	backend.err = ErrOutOfMemory
	err = r.Render(0)
	assert.True(t, IsFatal(err))
	assert.True(t, errors.Is(err, ErrOutOfMemory))

	r.Reconfigure()
	assert.Equal(t, 1, backend.resized)
}

func TestPreviewBackendDetectsOutdatedSurface(t *testing.T) {
	b := NewPreviewBackend(640, 480)

	assert.NoError(t, b.Render(NewRenderingInfo(640, 480), nil))
	assert.ErrorIs(t, b.Render(NewRenderingInfo(800, 600), nil), ErrSurfaceOutdated)

	b.Resize(800, 600, 1)
	assert.NoError(t, b.Render(NewRenderingInfo(800, 600), nil))
}
