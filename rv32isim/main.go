// Command rv32isim is the CLI front door for the RV32I pipeline
// simulator: it drives loader.Load to turn a C source file into a
// Program, builds a pipeline.Rv32i around it, and steps the clock per
// spec.md §6.
//
// Grounded on original_source/src/main.rs's REPL loop (rising edge,
// print, falling edge, print) for -step, with -run and -run-until-halt
// added per SPEC_FULL.md §4.17 for non-interactive use. CLI flag style
// follows master-g/childhood's chr2png/main.go (gopkg.in/urfave/cli.v2).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"rv32isim/loader"
	"rv32isim/pipeline"
)

func main() {
	app := &cli.App{
		Name:  "rv32isim",
		Usage: "Cycle-accurate RV32I five-stage pipeline simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "compiler-path",
				Aliases: []string{"c"},
				Usage:   "path to the rv32i C cross-compiler",
			},
			&cli.StringFlag{
				Name:    "objdump-path",
				Aliases: []string{"o"},
				Usage:   "path to the matching objdump",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "C source file to compile and simulate",
			},
			&cli.BoolFlag{
				Name:  "step",
				Usage: "advance one cycle per Enter press, printing each half-edge's state",
			},
			&cli.IntFlag{
				Name:  "run",
				Usage: "advance N cycles silently, then print final state",
			},
			&cli.BoolFlag{
				Name:  "run-until-halt",
				Usage: "advance cycles until the PC stops advancing (a self-loop), or max-cycles is hit",
			},
			&cli.IntFlag{
				Name:  "max-cycles",
				Usage: "safety cap on -run-until-halt",
				Value: 1_000_000,
			},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("rv32isim: %v", err)
	}
}

func run(c *cli.Context) error {
	pg, err := loader.Load(loader.Config{
		CompilerPath: c.String("compiler-path"),
		ObjdumpPath:  c.String("objdump-path"),
		File:         c.String("file"),
	})
	if err != nil {
		log.Fatalf("rv32isim: %v", err)
	}

	cpu := pipeline.NewRv32i(pg.Insts, loader.AsmLines(pg.Asm), uint32(pg.Start))

	switch {
	case c.Bool("step"):
		stepLoop(cpu)
	case c.Bool("run-until-halt"):
		runUntilHalt(cpu, c.Int("max-cycles"))
	default:
		runCycles(cpu, c.Int("run"))
	}
	return nil
}

// stepLoop mirrors original_source/src/main.rs's REPL: each Enter press
// advances one cycle, printing the state after the rising edge (the
// moment every shadow has sampled but nothing has committed) and again
// after the falling edge (the newly committed, visible state).
func stepLoop(cpu *pipeline.Rv32i) {
	scanner := bufio.NewScanner(os.Stdin)
	for cycle := 1; scanner.Scan(); cycle++ {
		fmt.Printf("Cycle: %d\n", cycle)
		cpu.RisingEdge()
		fmt.Println(cpu.Debug())
		cpu.FallingEdge()
		fmt.Println(cpu.Debug())
	}
}

func runCycles(cpu *pipeline.Rv32i, n int) {
	for i := 0; i < n; i++ {
		cpu.RisingEdge()
		cpu.FallingEdge()
	}
	fmt.Println(cpu.Debug())
}

// runUntilHalt treats two consecutive cycles with an unchanged PC as a
// halt (the conventional bare-metal "1: j 1b" idiom), bounded by
// maxCycles since nothing in this design emits an explicit halt signal.
func runUntilHalt(cpu *pipeline.Rv32i, maxCycles int) {
	lastPC := cpu.PC()
	for i := 0; i < maxCycles; i++ {
		cpu.RisingEdge()
		cpu.FallingEdge()
		pc := cpu.PC()
		if pc == lastPC {
			break
		}
		lastPC = pc
	}
	fmt.Println(cpu.Debug())
}
