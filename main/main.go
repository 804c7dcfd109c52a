package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/anycell"
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
	type sample struct {
		ID    int32
		Score float64
	}
	for i := 0; i < 10000; i++ {
		c := anycell.MustNew[anycell.Buf16](sample{ID: int32(i), Score: 0.5})
		p, _ := anycell.Mut[sample](&c)
		p.Score += float64(i)
		v, _ := anycell.Load[sample](&c)
		_ = v
		c.Free()
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}
