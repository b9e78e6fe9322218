// Command studyplan records study sessions and exam results, predicts a
// score for every subject and prints a weekly timetable that gives the
// weakest subjects the most time.
//
//	studyplan [-config studyplan.yaml] add -subject Math -hours 3 -previous 55 -days 10 -difficulty 8 [-final 61]
//	studyplan [-config studyplan.yaml] list
//	studyplan [-config studyplan.yaml] stats [-format text|json]
//	studyplan [-config studyplan.yaml] clear
//	studyplan [-config studyplan.yaml] plan [-format text|json] [-summary] [-seed N]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "studyplan: %v\n", err)
		os.Exit(1)
	}
}
