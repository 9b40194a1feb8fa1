package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a key is recorded twice", func() {
			first := d.SeenAndRecord(ctx, dedupe.DealKey("deal-1"))
			second := d.SeenAndRecord(ctx, dedupe.DealKey("deal-1"))

			Convey("Then only the first record reports unseen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When distinct deal ids are recorded", func() {
			So(d.SeenAndRecord(ctx, dedupe.DealKey("x")), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, dedupe.DealKey("y")), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 2)
		})
	})
}

func TestUnrecord(t *testing.T) {
	ctx := context.Background()

	Convey("Given a recorded key", t, func() {
		d := dedupe.NewInMemoryDeduper()
		key := dedupe.DealKey("deal-1")
		So(d.SeenAndRecord(ctx, key), ShouldBeFalse)

		Convey("When it is unrecorded", func() {
			d.Unrecord(ctx, key)

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, key), ShouldBeFalse)
			})
		})

		Convey("When an unknown key is unrecorded", func() {
			d.Unrecord(ctx, dedupe.DealKey("deal-nobody"))
			So(d.Size(), ShouldEqual, 1)
		})
	})
}

func TestBoundedEviction(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded to 3 keys", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		for i := 0; i < 3; i++ {
			So(d.SeenAndRecord(ctx, fmt.Sprintf("deal:%d", i)), ShouldBeFalse)
		}

		Convey("When a fourth key arrives", func() {
			So(d.SeenAndRecord(ctx, "deal:3"), ShouldBeFalse)

			Convey("Then the oldest key is evicted and the size holds", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "deal:0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "deal:3"), ShouldBeTrue)
			})
		})

		Convey("When the oldest key was already unrecorded", func() {
			d.Unrecord(ctx, "deal:0")
			So(d.SeenAndRecord(ctx, "deal:3"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "deal:4"), ShouldBeFalse)

			Convey("Then eviction skips the stale entry and drops the next oldest", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "deal:2"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "deal:1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		for i := 0; i < 100; i++ {
			So(d.SeenAndRecord(ctx, fmt.Sprintf("deal:%d", i)), ShouldBeFalse)
		}
		So(d.Size(), ShouldEqual, 100)
		So(d.SeenAndRecord(ctx, "deal:0"), ShouldBeTrue)
	})
}

func TestConcurrentRecord(t *testing.T) {
	Convey("Given many goroutines recording the same key", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		var wg sync.WaitGroup
		var firsts int64
		var mu sync.Mutex

		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "deal:contended") {
					mu.Lock()
					firsts++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one goroutine records it", func() {
			So(firsts, ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
