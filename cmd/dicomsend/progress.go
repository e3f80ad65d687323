package main

import (
	"context"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/caio-sobreiro/dicomsend/storescu"
)

// progressBars shows one bar counting objects and one counting bytes. The
// observer callbacks run on the engine goroutine; the decorators render on
// mpb's.
type progressBars struct {
	container *mpb.Progress
	objects   *mpb.Bar
	bytes     *mpb.Bar

	lock    sync.Mutex
	current string
	started time.Time
}

func newProgressBars(ctx context.Context, pending int) *progressBars {
	pb := &progressBars{container: mpb.NewWithContext(ctx)}

	pb.objects = pb.container.AddBar(int64(pending),
		mpb.PrependDecorators(
			decor.Name("objects", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 15), "done"),
			decor.Name(" "),
			decor.Any(func(decor.Statistics) string { return pb.currentName() }),
		),
	)
	// the byte total is unknown up front; it grows with each object sent
	pb.bytes = pb.container.AddBar(0,
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name("sent", decor.WCSyncSpaceR),
			decor.CurrentKibiByte("% .2f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.EwmaSpeed(decor.SizeB1024(0), "% .2f", 15),
		),
	)
	return pb
}

func (pb *progressBars) currentName() string {
	pb.lock.Lock()
	defer pb.lock.Unlock()
	return pb.current
}

func (pb *progressBars) begin(entry *storescu.TransferEntry) {
	pb.lock.Lock()
	pb.current = entry.SourceName()
	pb.lock.Unlock()
	pb.started = time.Now()
}

func (pb *progressBars) done(entry *storescu.TransferEntry) {
	elapsed := time.Since(pb.started)
	pb.objects.EwmaIncrement(elapsed)
	pb.bytes.EwmaIncrInt64(entry.Size, elapsed)
}

// shutdown completes the bars whatever the job outcome and waits for the
// last render.
func (pb *progressBars) shutdown() {
	pb.lock.Lock()
	pb.current = ""
	pb.lock.Unlock()

	if !pb.objects.Completed() {
		pb.objects.Abort(false)
	}
	pb.bytes.SetTotal(-1, true)
	pb.container.Wait()
}
