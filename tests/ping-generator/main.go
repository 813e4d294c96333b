package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Simulates a courier walking a straight line toward a drop-off point,
// publishing a position ping every interval. Useful for exercising the
// ingestion pipeline and the websocket fan-out end to end.

type ping struct {
	CourierID  uuid.UUID `json:"courier_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	Speed      float64   `json:"speed"`
	Heading    float64   `json:"heading"`
	CapturedAt time.Time `json:"captured_at"`
}

func main() {
	var (
		broker    = flag.String("broker", "localhost:9092", "kafka broker")
		topic     = flag.String("topic", "courier-pings", "pings topic")
		courier   = flag.String("courier", "", "courier id (random if empty)")
		interval  = flag.Duration("interval", 3*time.Second, "ping interval")
		startLat  = flag.Float64("lat", 40.7128, "start latitude")
		startLon  = flag.Float64("lon", -74.0060, "start longitude")
		targetLat = flag.Float64("target-lat", 40.7306, "target latitude")
		targetLon = flag.Float64("target-lon", -73.9866, "target longitude")
		steps     = flag.Int("steps", 100, "steps to reach the target")
		garbage   = flag.Bool("garbage", false, "occasionally emit malformed and inaccurate pings")
	)
	flag.Parse()

	courierID := uuid.New()
	if *courier != "" {
		var err error
		courierID, err = uuid.Parse(*courier)
		if err != nil {
			log.Fatalf("invalid courier id: %v", err)
		}
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(*broker),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log.Printf("courier %s walking (%f,%f) -> (%f,%f)", courierID, *startLat, *startLon, *targetLat, *targetLon)

	heading := math.Atan2(*targetLon-*startLon, *targetLat-*startLat) * 180 / math.Pi
	if heading < 0 {
		heading += 360
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress := math.Min(float64(step)/float64(*steps), 1)
		p := ping{
			CourierID: courierID,
			Latitude:  *startLat + (*targetLat-*startLat)*progress + jitter(0.0002),
			Longitude: *startLon + (*targetLon-*startLon)*progress + jitter(0.0002),
			Accuracy:  5 + rand.Float64()*20,
			Speed:     10 + rand.Float64()*15,
			Heading:   heading,
			CapturedAt: time.Now().UTC(),
		}

		value, _ := json.Marshal(p)
		if *garbage && rand.Intn(10) == 0 {
			switch rand.Intn(3) {
			case 0:
				value = []byte("{not json")
			case 1:
				p.Accuracy = 500
				value, _ = json.Marshal(p)
			default:
				p.Latitude = 91.5
				value, _ = json.Marshal(p)
			}
		}

		err := writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(courierID.String()),
			Value: value,
		})
		if err != nil {
			log.Printf("failed to write ping: %v", err)
			continue
		}
		log.Printf("ping %d: (%f, %f)", step, p.Latitude, p.Longitude)

		if progress >= 1 {
			log.Println("arrived")
			return
		}
	}
}

func jitter(scale float64) float64 {
	return (rand.Float64() - 0.5) * scale
}
