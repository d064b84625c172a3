//go:build !linux && !tinygo

package platform

import (
	"picosoc-go/board"
	"picosoc-go/errcode"
)

func openDevMem(board.Config, string) (*Target, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform.devmem", Msg: "physical memory mapping needs linux"}
}
