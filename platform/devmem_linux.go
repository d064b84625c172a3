//go:build linux && !tinygo

package platform

import (
	"picosoc-go/board"
	"picosoc-go/errcode"
	"picosoc-go/regs"
)

func openDevMem(cfg board.Config, path string) (*Target, error) {
	d, err := regs.OpenDevMem(path, regs.Addr(cfg.PeriphBase), board.Span())
	if err != nil {
		return nil, &errcode.E{C: errcode.Error, Op: "platform.devmem", Msg: path, Err: err}
	}
	return &Target{Bus: d, close: d.Close}, nil
}
