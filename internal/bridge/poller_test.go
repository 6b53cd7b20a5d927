package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fabiuuh12/Physics-and-Programming/internal/orbit"
)

func writeControls(path string, ts int64, extra string) {
	content := fmt.Sprintf("zoom = 1.0\nrotation_deg = 0\npitch_deg = 0\n%stimestamp_ms = %d\n", extra, ts)
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
}

var _ = Describe("Poller", func() {
	var (
		dir    string
		file   string
		poller *Poller
		now    time.Time
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		file = filepath.Join(dir, "live_controls.txt")
		poller = NewPoller([]string{filepath.Join(dir, "missing.txt"), file})
		now = time.UnixMilli(1_700_000_000_000)
		poller.now = func() time.Time { return now }
	})

	It("reports waiting when no candidate exists", func() {
		_, status := poller.Poll()
		Expect(status).To(Equal(StatusWaiting))
		Expect(poller.Path()).To(BeEmpty())
	})

	It("finds the file through the candidate list and caches it", func() {
		writeControls(file, now.UnixMilli(), "")

		_, status := poller.Poll()
		Expect(status).To(Equal(StatusLive))
		Expect(poller.Path()).To(Equal(file))
	})

	It("classifies an old snapshot as stale", func() {
		writeControls(file, now.Add(-2*time.Second).UnixMilli(), "")

		_, status := poller.Poll()
		Expect(status).To(Equal(StatusStale))
	})

	It("accepts a snapshot right at the staleness boundary", func() {
		writeControls(file, now.Add(-StaleAfter).UnixMilli(), "")

		_, status := poller.Poll()
		Expect(status).To(Equal(StatusLive))
	})

	It("degrades to waiting when the file disappears", func() {
		writeControls(file, now.UnixMilli(), "")
		_, status := poller.Poll()
		Expect(status).To(Equal(StatusLive))

		Expect(os.Remove(file)).To(Succeed())
		_, status = poller.Poll()
		Expect(status).To(Equal(StatusWaiting))
	})
})

var _ = Describe("Controller", func() {
	var (
		dir  string
		file string
		ctl  *Controller
		cam  *orbit.Camera
		now  time.Time
	)

	step := func(ts int64, body string) Status {
		writeControls(file, ts, body)
		return ctl.Tick(cam, Hooks{})
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		file = filepath.Join(dir, "live_controls.txt")
		poller := NewPoller([]string{file})
		now = time.UnixMilli(1_700_000_000_000)
		poller.now = func() time.Time { return now }

		ctl = NewController(poller)
		ctl.now = func() time.Time { return now }
		cam = orbit.NewCamera(0.78, 0.38, 11.0, orbit.DefaultLimits())
	})

	It("never moves the camera from a stale snapshot", func() {
		yaw, pitch, dist := cam.Yaw, cam.Pitch, cam.Distance

		status := step(now.Add(-3*time.Second).UnixMilli(), "rotation_deg = 90\nzoom = 4\n")
		Expect(status).To(Equal(StatusStale))
		Expect(cam.Yaw).To(Equal(yaw))
		Expect(cam.Pitch).To(Equal(pitch))
		Expect(cam.Distance).To(Equal(dist))
	})

	It("applies rotation deltas between fresh snapshots", func() {
		step(now.UnixMilli(), "rotation_deg = 10\n")
		yaw := cam.Yaw

		step(now.UnixMilli(), "rotation_deg = 30\n")
		Expect(cam.Yaw).To(BeNumerically("~", yaw+20*3.14159265/180, 1e-6))
	})

	It("reseeds after a stale gap instead of jumping", func() {
		step(now.UnixMilli(), "rotation_deg = 0\n")
		step(now.UnixMilli(), "rotation_deg = 5\n")
		yaw := cam.Yaw

		// Bridge goes dark, rotation moves far in the meantime.
		status := step(now.Add(-5*time.Second).UnixMilli(), "rotation_deg = 170\n")
		Expect(status).To(Equal(StatusStale))

		// First fresh snapshot only seeds; no jump.
		step(now.UnixMilli(), "rotation_deg = 170\n")
		Expect(cam.Yaw).To(Equal(yaw))
	})

	It("routes double pinches to the speed hook", func() {
		fired := 0
		hooks := Hooks{SpeedStep: func(dir int) { fired += dir }}

		writeControls(file, now.UnixMilli(), "n_inc_count = 0\n")
		ctl.Tick(cam, hooks)
		writeControls(file, now.UnixMilli(), "n_inc_count = 2\n")
		ctl.Tick(cam, hooks)

		Expect(fired).To(Equal(1))
	})

	It("routes an expired single pinch to the density hook", func() {
		density := 0
		hooks := Hooks{DensityStep: func(dir int) { density += dir }}

		writeControls(file, now.UnixMilli(), "n_dec_count = 0\n")
		ctl.Tick(cam, hooks)
		writeControls(file, now.UnixMilli(), "n_dec_count = 1\n")
		ctl.Tick(cam, hooks)
		Expect(density).To(Equal(0))

		now = now.Add(PinchWindow + time.Millisecond)
		writeControls(file, now.UnixMilli(), "n_dec_count = 1\n")
		ctl.Tick(cam, hooks)
		Expect(density).To(Equal(-1))
	})
})
