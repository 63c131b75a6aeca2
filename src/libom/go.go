package libom

import (
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"syscall"
)

type gos struct {
	lock  sync.Mutex
	total uint64
}

var Gos = gos{}

func (t *gos) Add(call interface{}) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.total++
	Debug("gos.Add %d %p", t.total, call)
}

func (t *gos) Del(call interface{}) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.total--
	Debug("gos.Del %d %p", t.total, call)
}

func FunName(i interface{}) string {
	ptr := reflect.ValueOf(i).Pointer()
	name := runtime.FuncForPC(ptr).Name()
	return name
}

func Go(call func()) {
	name := FunName(call)
	go func() {
		defer Catch("Go.func")
		Gos.Add(call)
		Debug("Go.Add: %s", name)
		call()
		Debug("Go.Del: %s", name)
		Gos.Del(call)
	}()
}

var waits = make(chan os.Signal, 4)

// Wait blocks until the process receives an exit signal.
func Wait() {
	signal.Notify(waits, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	n := <-waits
	Warn("Wait: ... Signal %d received ...", n)
}
