package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blinkstick/blinkstick-go/pkg/blinkstick"
)

var (
	flagChannel int
	flagIndex   int
)

func main() {
	root := &cobra.Command{
		Use:           "blinkctl",
		Short:         "Control BlinkStick USB LED devices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&flagChannel, "channel", 0, "LED channel (BlinkStick Pro)")
	root.PersistentFlags().IntVar(&flagIndex, "index", 0, "LED index within the channel")

	root.AddCommand(listCmd(), setCmd(), fillCmd(), getCmd(), offCmd(), modeCmd(), ledsCmd(), cycleCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openFirst finds the first connected BlinkStick. Callers own the handle.
func openFirst() (*blinkstick.Device, error) {
	return blinkstick.Find()
}

func parseRGB(args []string) (r, g, b int, err error) {
	vals := make([]int, 3)
	for i, a := range args {
		vals[i], err = strconv.Atoi(a)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid colour value %q", a)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected BlinkStick devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := blinkstick.FindAll()
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("no devices found")
				return nil
			}
			for _, d := range devices {
				fmt.Printf("%s, %d leds\n", d.Describe(), d.LEDCount())
				d.Close()
			}
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set R G B",
		Short: "Set one LED's colour",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, g, b, err := parseRGB(args)
			if err != nil {
				return err
			}
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()
			if !dev.SetColour(flagChannel, flagIndex, r, g, b) {
				return errors.New("setting colour failed")
			}
			return nil
		},
	}
}

func fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill R G B",
		Short: "Set every LED on a channel to one colour",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, g, b, err := parseRGB(args)
			if err != nil {
				return err
			}
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()
			if !dev.Fill(flagChannel, r, g, b) {
				return errors.New("setting colours failed")
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Read one LED's colour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()
			c := dev.Colour(flagIndex)
			fmt.Printf("%d %d %d\n", c.R, c.G, c.B)
			return nil
		},
	}
}

func offCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "off",
		Short: "Turn LEDs off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()
			ok := false
			if all {
				ok = dev.AllOff()
			} else {
				ok = dev.Off(flagChannel, flagIndex)
			}
			if !ok {
				return errors.New("turning off failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "turn off every LED on channel 0")
	return cmd
}

func modeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [value]",
		Short: "Show or set the device mode (0=normal, 1=inverse, 2=ws2812)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 0 {
				fmt.Println(dev.Mode())
				return nil
			}

			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid mode %q", args[0])
			}
			if !dev.SetMode(blinkstick.Mode(v)) {
				return errors.New("setting mode failed")
			}
			return nil
		},
	}
}

func ledsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leds [count]",
		Short: "Show or set the LED count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 0 {
				fmt.Println(dev.LEDCount())
				return nil
			}

			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 || n > 255 {
				return fmt.Errorf("invalid led count %q", args[0])
			}
			if !dev.SetLEDCount(byte(n)) {
				return errors.New("setting led count failed")
			}
			return nil
		},
	}
}

func cycleCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Rotate a colour pattern across the strip until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dev, err := openFirst()
			if err != nil {
				return err
			}
			defer dev.Close()

			count := dev.LEDCount()
			if count == 0 {
				count = 1
			}
			colours := make([]blinkstick.Colour, count)
			for i := range colours {
				if i%2 == 0 {
					colours[i] = blinkstick.Colour{R: 255, G: 215}
				} else {
					colours[i] = blinkstick.Colour{R: 64, G: 219, B: 219}
				}
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					dev.AllOff()
					return nil
				case <-ticker.C:
					dev.SetColours(flagChannel, colours)
					first := colours[0]
					copy(colours, colours[1:])
					colours[len(colours)-1] = first
				}
			}
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "time between rotation steps")
	return cmd
}
