// Command solve runs a single instance file through the engine and prints the
// resulting plan, without the HTTP service or the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"roster-routing-service/internal/adapters/instances"
	"roster-routing-service/internal/adapters/sat"
	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
	"roster-routing-service/internal/services"
)

func main() {
	path := flag.String("instance", "", "path to an instance YAML file")
	timeLimit := flag.Duration("time-limit", 30*time.Second, "solve time budget")
	workers := flag.Int("workers", 0, "solver worker hint (0 = default)")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	kind, err := instances.KindOf(*path)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	opts := ports.SolveOptions{TimeLimit: *timeLimit, Workers: *workers}
	engine := sat.Engine{}

	switch kind {
	case instances.KindSchedule:
		in, err := instances.LoadScheduleFile(*path)
		if err != nil {
			log.Fatal(err)
		}
		out, err := services.BuildSchedule(ctx, engine, in, opts)
		if err != nil {
			log.Fatal(err)
		}
		printSchedule(in, out)
	case instances.KindRouting:
		in, err := instances.LoadRoutingFile(*path)
		if err != nil {
			log.Fatal(err)
		}
		out, err := services.BuildRoutes(ctx, engine, in, opts)
		if err != nil {
			log.Fatal(err)
		}
		printRoutes(out)
	default:
		log.Fatalf("unknown instance kind %q", kind)
	}
}

func printSchedule(in *domain.ScheduleInstance, out *domain.ScheduleAssignment) {
	fmt.Printf("objective=%d optimal=%v\n", out.Objective, out.Optimal)
	fmt.Print("employee")
	for d := 0; d < in.Days; d++ {
		fmt.Printf("  d%02d", d)
	}
	fmt.Println()
	for e, row := range out.Shifts {
		fmt.Printf("%8d", e)
		for _, s := range row {
			if s == 0 {
				fmt.Print("    .")
			} else {
				fmt.Printf("   s%d", s)
			}
		}
		fmt.Println()
	}
}

func printRoutes(out *domain.RoutingSolution) {
	fmt.Printf("objective=%d optimal=%v\n", out.Objective, out.Optimal)
	for _, plan := range out.Plans {
		if len(plan.Stops) == 0 {
			fmt.Printf("vehicle %d: unused\n", plan.VehicleID)
			continue
		}
		fmt.Printf("vehicle %d: distance=%dm duration=%ds\n",
			plan.VehicleID, plan.TotalDistanceMeters, plan.TotalDurationSeconds)
		for _, s := range plan.Stops {
			fmt.Printf("  node=%d arrive=%ds load=%d dist=%dm\n",
				s.Node, s.ArriveSeconds, s.Load, s.DistanceMeters)
		}
	}
}
