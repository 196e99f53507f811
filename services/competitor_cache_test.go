package services_test

import (
	"context"
	"encoding/json"
	"time"

	"hotel-pricing/models"
	"hotel-pricing/services"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
)

var _ = Describe("CachedCompetitorSource with redis", func() {
	var (
		mr       *miniredis.Miniredis
		upstream *stubSource
		cached   *services.CachedCompetitorSource
		ctx      context.Context
	)

	fresh := []models.CompetitorPriceRecord{
		{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 85, BasePrice: 190},
	}

	BeforeEach(func() {
		var err error
		mr, err = miniredis.Run()
		Ω(err).ShouldNot(HaveOccurred())
		DeferCleanup(mr.Close)

		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(rdb.Close)

		ctx = context.Background()
		upstream = &stubSource{records: fresh}
		cached = services.NewCachedCompetitorSource(upstream, rdb, time.Minute, time.Second, testLogger())
	})

	It("serves a cached entry without calling upstream", func() {
		stored := []models.CompetitorPriceRecord{{CompetitorName: "City Lights", RoomType: "Suite", BasePrice: 320}}
		bs, err := json.Marshal(stored)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(mr.Set("competitors:records", string(bs))).Should(Succeed())

		records, err := cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(records).Should(Equal(stored))
		Ω(upstream.calls.Load()).Should(BeZero())
	})

	It("fills the cache on a miss with the configured ttl", func() {
		records, err := cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(records).Should(Equal(fresh))
		Ω(upstream.calls.Load()).Should(Equal(int32(1)))

		Ω(mr.Exists("competitors:records")).Should(BeTrue())
		Ω(mr.TTL("competitors:records")).Should(Equal(time.Minute))

		records, err = cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(records).Should(Equal(fresh))
		Ω(upstream.calls.Load()).Should(Equal(int32(1)))
	})

	It("caches competitor names under their own key", func() {
		names, err := cached.Names(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(names).Should(Equal([]string{"Harbour Inn"}))

		raw, err := mr.Get("competitors:names")
		Ω(err).ShouldNot(HaveOccurred())
		Ω(raw).Should(MatchJSON(`["Harbour Inn"]`))
	})

	It("replaces an unreadable entry with upstream data", func() {
		Ω(mr.Set("competitors:records", "not json")).Should(Succeed())

		records, err := cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(records).Should(Equal(fresh))
		Ω(upstream.calls.Load()).Should(Equal(int32(1)))

		raw, err := mr.Get("competitors:records")
		Ω(err).ShouldNot(HaveOccurred())
		var stored []models.CompetitorPriceRecord
		Ω(json.Unmarshal([]byte(raw), &stored)).Should(Succeed())
		Ω(stored).Should(Equal(fresh))
	})

	It("drops both entries on Invalidate", func() {
		_, err := cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		_, err = cached.Names(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(mr.Exists("competitors:records")).Should(BeTrue())
		Ω(mr.Exists("competitors:names")).Should(BeTrue())

		Ω(cached.Invalidate(ctx)).Should(Succeed())
		Ω(mr.Exists("competitors:records")).Should(BeFalse())
		Ω(mr.Exists("competitors:names")).Should(BeFalse())

		_, err = cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(upstream.calls.Load()).Should(Equal(int32(2)))
	})

	It("falls back to upstream when redis is down", func() {
		mr.Close()

		records, err := cached.Records(ctx)
		Ω(err).ShouldNot(HaveOccurred())
		Ω(records).Should(Equal(fresh))
	})
})
