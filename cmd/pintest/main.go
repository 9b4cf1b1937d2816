package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ecol-master/packhouse/internal/output"
	"github.com/ecol-master/packhouse/internal/outputdrivers"
	"github.com/ecol-master/packhouse/internal/pinspec"
	"github.com/spf13/pflag"
)

type pinWrite struct {
	pin   output.Pin
	level output.Level
}

func parseWrite(arg string) (pinWrite, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return pinWrite{}, fmt.Errorf("invalid argument: %s", arg)
	}

	pin, err := pinspec.ParsePinNumber(parts[0])
	if err != nil {
		return pinWrite{}, err
	}

	switch strings.ToLower(parts[1]) {
	case "high", "1":
		return pinWrite{pin, output.High}, nil
	case "low", "0":
		return pinWrite{pin, output.Low}, nil
	default:
		return pinWrite{}, fmt.Errorf("invalid level for pin %d: %s", pin, parts[1])
	}
}

// Pins must keep their level after pintest exits, which gpiocdev does not
// guarantee.
const defaultDriver = "periph"

func driverConfig(driver string, pins []int, chip, spidev string) map[string]any {
	switch driver {
	case "periph":
		return map[string]any{"pins": pins}
	case "gpiocdev":
		return map[string]any{"chip": chip, "consumer": "pintest"}
	case "piface":
		return map[string]any{"spidev": spidev}
	case "dummy":
		return map[string]any{"verbose": true}
	default:
		return map[string]any{}
	}
}

func main() {
	driver := pflag.String("driver", defaultDriver, "Output driver")
	chip := pflag.String("gpiocdev.chip", "gpiochip0", "GPIO chip (gpiocdev driver)")
	spidev := pflag.String("piface.spidev", "/dev/spidev0.0", "SPI device (piface driver)")
	pflag.Parse()

	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [--driver name] pin=high|low [pin=high|low...]\n", os.Args[0])
		os.Exit(1)
	}

	var writes []pinWrite
	var pins []int
	for _, arg := range pflag.Args() {
		w, err := parseWrite(arg)
		if err != nil {
			log.Fatalf("%v", err)
		}
		writes = append(writes, w)
		pins = append(pins, int(w.pin))
	}

	w, err := outputdrivers.Create(*driver, driverConfig(*driver, pins, *chip, *spidev))
	if err != nil {
		log.Fatalf("failed to create output driver: %s", err)
	}
	defer w.Close() //nolint:errcheck

	for _, pw := range writes {
		log.Printf("setting pin %d %s", pw.pin, pw.level)
		w.Write(pw.pin, pw.level)
	}
}
