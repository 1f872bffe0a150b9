package provider

import (
	"sort"
	"time"

	"solarfx/pkg/model"
)

// Resample aggregates candles into buckets of the given width: open from the
// first candle, close from the last, high/low across the bucket, summed
// volume. Buckets align to the Unix epoch. Input order is preserved; gaps
// simply produce no bucket.
func Resample(candles []model.Candle, width time.Duration) []model.Candle {
	if len(candles) == 0 || width <= 0 {
		return nil
	}

	buckets := make(map[int64]*model.Candle)
	for _, c := range candles {
		key := c.Time.Truncate(width).Unix()
		b, ok := buckets[key]
		if !ok {
			agg := c
			agg.Time = time.Unix(key, 0)
			buckets[key] = &agg
			continue
		}
		if c.High > b.High {
			b.High = c.High
		}
		if c.Low < b.Low {
			b.Low = c.Low
		}
		b.Close = c.Close
		b.Volume += c.Volume
	}

	out := make([]model.Candle, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
