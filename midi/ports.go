package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ScanTimeout bounds port discovery (CoreMIDI can hang)
const ScanTimeout = 3 * time.Second

var (
	ErrScanTimeout  = errors.New("midi port scan timed out")
	ErrPortNotFound = errors.New("midi port not found")
)

// OutPorts lists output port names, giving up after ScanTimeout
func OutPorts() ([]string, error) {
	outs, err := scanOut()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	return names, nil
}

func scanOut() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(ScanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, ErrScanTimeout
	}
}

// OpenOut opens the output port whose name contains name (case-insensitive)
// and returns its sender. An empty name picks the first port.
func OpenOut(name string) (func(gomidi.Message) error, string, error) {
	outs, err := scanOut()
	if err != nil {
		return nil, "", err
	}

	want := strings.ToLower(name)
	for _, port := range outs {
		if want != "" && !strings.Contains(strings.ToLower(port.String()), want) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, "", fmt.Errorf("open output %s: %w", port.String(), err)
		}
		return send, port.String(), nil
	}
	return nil, "", fmt.Errorf("%q: %w", name, ErrPortNotFound)
}

// CloseDriver shuts down the MIDI driver
func CloseDriver() {
	gomidi.CloseDriver()
}
