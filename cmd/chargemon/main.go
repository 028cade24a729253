//go:build linux

// Command chargemon configures an nPM13xx charger from a JSON description and
// polls its telemetry channels.
//
//	chargemon -config charger.json -interval 2s
package main

import (
	"flag"
	"time"

	"github.com/edaniels/golog"

	"powercode-go/config"
	"powercode-go/drivers/npm13xx"
	"powercode-go/errcode"
	"powercode-go/mfd"
	"powercode-go/mfd/i2cdev"
	"powercode-go/x/mathx"
)

func main() {
	var (
		cfgPath  = flag.String("config", "charger.json", "charger description file")
		interval = flag.Duration("interval", 2*time.Second, "poll interval")
		once     = flag.Bool("once", false, "fetch one sample and exit")
	)
	flag.Parse()

	logger := golog.NewDevelopmentLogger("chargemon")

	doc, err := config.FromFile(*cfgPath)
	if err != nil {
		logger.Fatalw("config load failed", "code", errcode.Of(err), "error", err)
	}
	cfg, err := doc.Driver()
	if err != nil {
		logger.Fatalw("config resolve failed", "code", errcode.Of(err), "error", err)
	}

	bus, err := i2cdev.Open(doc.Bus)
	if err != nil {
		logger.Fatalw("i2c open failed", "bus", doc.Bus, "error", err)
	}
	defer bus.Close()

	dev := npm13xx.New(mfd.New(bus, doc.Address), cfg)
	if err := dev.Init(); err != nil {
		logger.Fatalw("charger init failed", "code", errcode.MapDriverErr(err), "error", err)
	}
	logger.Infow("charger configured", "variant", cfg.Variant.String(), "bus", doc.Bus)

	every := mathx.Clamp(*interval, 100*time.Millisecond, time.Minute)
	for {
		if err := dev.SampleFetch(); err != nil {
			logger.Errorw("sample fetch failed", "code", errcode.MapDriverErr(err), "error", err)
		} else {
			logSample(logger, dev)
		}
		if *once {
			return
		}
		time.Sleep(every)
	}
}

func logSample(logger golog.Logger, dev *npm13xx.Device) {
	kv := []any{}
	channels := []struct {
		name string
		ch   npm13xx.Channel
	}{
		{"voltage_uv", npm13xx.ChanGaugeVoltage},
		{"temp_uc", npm13xx.ChanGaugeTemp},
		{"current_ua", npm13xx.ChanGaugeAvgCurrent},
		{"status", npm13xx.ChanChargerStatus},
		{"error", npm13xx.ChanChargerError},
		{"die_temp_uc", npm13xx.ChanDieTemp},
		{"vbus_status", npm13xx.ChanVBusStatus},
	}
	for _, c := range channels {
		v, err := dev.ChannelGet(c.ch)
		if err != nil {
			// Gauge temperature is unsupported without a thermistor; skip.
			continue
		}
		kv = append(kv, c.name, v)
	}
	logger.Infow("sample", kv...)
}
