package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends a finished ESC/POS stream to a device.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the device looks reachable.
	Ready() bool
}

type devicePrinter struct {
	path string
}

// NewDevicePrinter writes to a device file such as /dev/usb/lp0
func NewDevicePrinter(path string) Printer {
	return &devicePrinter{path: path}
}

func (p *devicePrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Ready() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter sends jobs over raw TCP, usually port 9100
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, dialer: net.Dialer{Timeout: 5 * time.Second}}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Recorder keeps every job in memory. It stands in when no hardware is configured.
type Recorder struct {
	mu   sync.Mutex
	jobs [][]byte
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Print(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, bytes.Clone(data))
	return nil
}

func (r *Recorder) Ready() bool { return false }

// Jobs returns the recorded print jobs
func (r *Recorder) Jobs() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// New picks a printer by type: "usb", "network" or "none".
func New(kind, devicePath, address string) (Printer, error) {
	switch kind {
	case "usb":
		if devicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return NewDevicePrinter(devicePath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewRecorder(), nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network, or none)", kind)
	}
}
