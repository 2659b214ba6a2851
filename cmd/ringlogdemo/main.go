package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/abyssdigger/ringlog"
)

// st1 cycles one logger through targets and modes, logging a few lines in
// every configuration.
func st1(cfg ringlog.Config) {
	logger := ringlog.New()
	targets := [...]string{"", cfg.Target, "", cfg.Target}
	for i, target := range targets {
		cfg.Target = target
		cfg.Async = i%2 == 1
		logger.ConfigureWith(cfg)
		lclient := logger.NewClient()
		for j := 0; j < 10; j++ {
			if err := lclient.Logf(ringlog.LVL_DEBUG, "LOG! #%d", j+1); err != nil {
				fmt.Println("Error:", err)
			}
		}
		fmt.Printf("*** configuration #%d: %+v ***\n", i+1, logger.Stats())
	}
	logger.Shutdown()
	fmt.Printf("*** FINITA LA COMEDIA: %+v ***\n", logger.Stats())
}

// st2 runs several goroutines, each with its own client, against one
// asynchronous logger.
func st2(cfg ringlog.Config) {
	cfg.Async = true
	logger := ringlog.New()
	logger.ConfigureWith(cfg)
	defer logger.Shutdown()

	var wg sync.WaitGroup
	for range 4 {
		c := logger.NewClient()
		wg.Go(func() {
			for level := ringlog.LVL_DEBUG; level <= ringlog.LVL_CRITICAL; level++ {
				c.LogTemplate(level, "<test> level {} from thread {}", level.String(), fmt.Sprint(c.ID()))
			}
			fmt.Fprintf(c.Lvl(ringlog.LVL_WARN), "done at %s", time.Now().Format(time.Kitchen))
		})
	}
	wg.Wait()
}

const stage = 2

func main() {
	cfg, err := ringlog.LoadConfig(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	switch stage {
	case 1:
		st1(cfg)
	case 2:
		st2(cfg)
	}
}
