// This file is part of oplrelay.
//
// oplrelay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// oplrelay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with oplrelay.  If not, see <https://www.gnu.org/licenses/>.

// Package player feeds the commands of a VGM file to a ChipWriteSink in real
// time. The player runs on the calling goroutine, which acts as the producer
// for the sink.
package player

import (
	"context"
	"time"

	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/logger"
	"github.com/jetsetilly/oplrelay/vgm"
)

const logTag = "player"

// Option functions are passed to Play().
type Option func(p *player)

// WithSpeed changes the playback speed. A value of 2.0 plays twice as fast. A
// value of zero or less plays the commands without any delay between them.
func WithSpeed(speed float64) Option {
	return func(p *player) {
		p.speed = speed
	}
}

// WithProgress sets a function to be called after every command has been
// written to the sink. The arguments are the number of commands written and
// the total number of commands.
func WithProgress(f func(n int, total int)) Option {
	return func(p *player) {
		p.progress = f
	}
}

type player struct {
	speed    float64
	progress func(n int, total int)
}

// the time at which the sample should be played, relative to the start
func (p *player) offset(sample uint64) time.Duration {
	d := time.Duration(sample) * time.Second / vgm.SampleRate
	return time.Duration(float64(d) / p.speed)
}

// Play writes every command in the file to the sink at the time indicated by
// the command. Returns the context's error if the context is cancelled before
// all commands have been written.
//
// Bank 1 commands are written to port offset 2 of the sink.
func Play(ctx context.Context, f *vgm.File, sink opl.ChipWriteSink, opts ...Option) error {
	p := &player{speed: 1.0}
	for _, o := range opts {
		o(p)
	}

	logger.Logf(logger.Allow, logTag, "playing %s", f)

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	start := time.Now()
	for i, c := range f.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}

		if p.speed > 0 {
			if wait := time.Until(start.Add(p.offset(c.Sample))); wait > 0 {
				timer.Reset(wait)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			}
		}

		bank := uint32(c.Bank)
		sink.WriteAddr(bank*2, c.Register)
		sink.WriteReg(uint32(c.Register)|bank<<8, c.Value)

		if p.progress != nil {
			p.progress(i+1, len(f.Commands))
		}
	}

	return nil
}
