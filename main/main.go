package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/bitbuf"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	buf := make([]byte, 256)
	s := bitbuf.NewStream(buf)
	for i := 0; i < 10000; i++ {
		s.SetIndex(0)
		s.WriteBool(true)
		s.WriteUint(0x155, 11)
		s.WriteInt16(-1234)
		s.WriteFloat64(6.02214076e23)
		s.WriteASCIIZ("profiling run")
		sub, _ := s.ReadStream(64)
		sub.WriteUint32(0xDEADBEEF)
		sub.WriteFloat32(2.5)

		s.SetIndex(0)
		s.ReadBool()
		s.ReadUint(11)
		s.ReadInt16()
		s.ReadFloat64()
		s.ReadASCIIZ()
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
