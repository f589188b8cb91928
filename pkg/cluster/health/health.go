package health

import (
	"context"
	"net"
	"time"
)

// Report is the outcome of one service check.
type Report struct {
	Service string        `json:"service"`
	Ok      bool          `json:"ok"`
	Detail  string        `json:"detail,omitempty"`
	Latency time.Duration `json:"latency"`
}

// Checker probes one external service.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name string
	f    func(context.Context) error
}

func (c checkFunc) Name() string {
	return c.name
}

func (c checkFunc) Check(ctx context.Context) error {
	return c.f(ctx)
}

func CheckFunc(name string, f func(context.Context) error) Checker {
	return checkFunc{name: name, f: f}
}

// TCPCheck probes addr by connecting once.
//
// Used for services axon has no credentials for, like postgres
// from the doctor command.
func TCPCheck(name string, addr string) Checker {
	return CheckFunc(name, func(ctx context.Context) error {
		d := net.Dialer{}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	})
}

// CheckAll runs every checker and gathers reports in the given order.
//
// Checkers run sequentially. The caller bounds the total time via ctx.
func CheckAll(ctx context.Context, checkers ...Checker) []Report {
	reports := make([]Report, 0, len(checkers))
	for _, c := range checkers {
		start := time.Now()
		err := c.Check(ctx)
		r := Report{
			Service: c.Name(),
			Ok:      err == nil,
			Latency: time.Since(start),
		}
		if err != nil {
			r.Detail = err.Error()
		}
		reports = append(reports, r)
	}
	return reports
}

// Healthy is true when every report is ok.
func Healthy(reports []Report) bool {
	for _, r := range reports {
		if !r.Ok {
			return false
		}
	}
	return true
}
