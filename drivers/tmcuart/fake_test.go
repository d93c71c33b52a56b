package tmcuart

import (
	"bytes"
	"io"

	"tinygo.org/x/drivers/tmc2209"
)

// fakeChip is a TMC2209 node on an in-memory single-wire bus
type fakeChip struct {
	addr    uint8
	echo    bool
	regs    map[uint8]uint32
	rx      bytes.Buffer
	writes  int
	corrupt bool // flip a bit in the next reply
}

func newFakeChip(addr uint8, echo bool) *fakeChip {
	return &fakeChip{
		addr: addr,
		echo: echo,
		regs: map[uint8]uint32{tmc2209.IOIN: ChipVersion << 24},
	}
}

func (f *fakeChip) Write(p []byte) (int, error) {
	if f.echo {
		f.rx.Write(p)
	}
	switch {
	case len(p) == writeLen && p[1] == f.addr && p[7] == tmc2209.CalculateCRC(p[:7]):
		f.regs[p[2]&^writeFlag] = uint32(p[3])<<24 | uint32(p[4])<<16 | uint32(p[5])<<8 | uint32(p[6])
		f.writes++
	case len(p) == readReqLen && p[1] == f.addr && p[3] == tmc2209.CalculateCRC(p[:3]):
		v := f.regs[p[2]]
		reply := []byte{syncByte, masterAddr, p[2], byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v), 0}
		reply[7] = tmc2209.CalculateCRC(reply[:7])
		if f.corrupt {
			reply[6] ^= 0x01
			f.corrupt = false
		}
		f.rx.Write(reply)
	}
	return len(p), nil
}

func (f *fakeChip) Read(p []byte) (int, error) {
	if f.rx.Len() == 0 {
		return 0, io.EOF
	}
	return f.rx.Read(p)
}
