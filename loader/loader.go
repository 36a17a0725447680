// Package loader is the external-collaborator surface spec.md §6 and §1
// keep out of the simulation kernel: it invokes a real C compiler and
// objdump, parses the resulting ELF, and hands the core a flat
// Program{} rather than have the kernel parse ELF or spawn processes
// itself.
//
// Grounded on original_source/src/config.rs and
// original_source/src/config/args.rs, translated from
// std::process::Command/goblin to os/exec/debug/elf.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Program is the flat instruction image and metadata the core consumes,
// per spec.md §6's "Program { insts, start, asm, entry }".
type Program struct {
	Insts []byte // raw .text bytes
	Start int    // virtual address .text is linked at
	Asm   string // objdump -d disassembly text, section body only
	Entry int    // ELF entry point
}

// Config names the external collaborator's binaries and input, each
// optional with the defaults spec.md §6 describes ("environment/file
// defaults").
type Config struct {
	CompilerPath string // default "riscv64-unknown-elf-gcc"
	ObjdumpPath  string // default "riscv64-unknown-elf-objdump"
	File         string // required: path to the C source to compile
}

const (
	defaultCompiler = "riscv64-unknown-elf-gcc"
	defaultObjdump  = "riscv64-unknown-elf-objdump"

	// elfOutput is the fixed output name the compiler invocation uses
	// (no -o flag), matching config.rs's hard-coded "a.out".
	elfOutput = "a.out"

	textDisassemblyMarker = "Disassembly of section .text:"
)

// CollaboratorError is a string-typed failure from the compiler,
// objdump, or ELF parsing step, per spec.md §7.2 ("external-collaborator
// errors ... surfaced as string-typed failures from the loader to the
// CLI"). Mirrors the cpu package's named-error-with-Reason idiom.
type CollaboratorError struct {
	Reason string
}

// Error implements error.
func (e CollaboratorError) Error() string { return e.Reason }

// Load compiles cfg.File for rv32i, extracts its .text section and
// entry point from the resulting ELF, and disassembles it with objdump.
// Every failure - compiler absent, compilation failure, non-ELF output,
// objdump failure, missing disassembly marker - is a CollaboratorError;
// Load never panics on bad input from the collaborator's tools.
func Load(cfg Config) (Program, error) {
	compiler := cfg.CompilerPath
	if compiler == "" {
		compiler = defaultCompiler
	}
	objdump := cfg.ObjdumpPath
	if objdump == "" {
		objdump = defaultObjdump
	}
	if cfg.File == "" {
		return Program{}, CollaboratorError{Reason: "loader: no source file given"}
	}

	if err := compile(compiler, cfg.File); err != nil {
		return Program{}, err
	}
	defer os.Remove(elfOutput)

	dat, err := os.ReadFile(elfOutput)
	if err != nil {
		return Program{}, CollaboratorError{Reason: fmt.Sprintf("loader: reading compiler output: %v", err)}
	}

	pg, err := parseElf(dat)
	if err != nil {
		return Program{}, err
	}

	asm, err := disassemble(objdump)
	if err != nil {
		return Program{}, err
	}
	pg.Asm = asm
	return pg, nil
}

func compile(compiler, file string) error {
	cmd := exec.Command(compiler,
		"-march=rv32i", "-mabi=ilp32", "-O0", "-x", "c",
		"-static", "-nostdlib", "-nostartfiles", file)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return CollaboratorError{Reason: strings.TrimRight(stderr.String(), "\n")}
		}
		return CollaboratorError{Reason: fmt.Sprintf("loader: failed to use compiler %s: %v", compiler, err)}
	}
	return nil
}

// parseElf extracts .text and the entry point from an ELF image,
// separated from compile/disassemble so it is testable against a
// hand-built image without invoking a real toolchain.
func parseElf(dat []byte) (Program, error) {
	f, err := elf.NewFile(bytes.NewReader(dat))
	if err != nil {
		return Program{}, CollaboratorError{Reason: "loader: not an ELF file"}
	}
	defer f.Close()

	sec := f.Section(".text")
	if sec == nil {
		return Program{}, CollaboratorError{Reason: "loader: ELF has no .text section"}
	}
	insts, err := sec.Data()
	if err != nil {
		return Program{}, CollaboratorError{Reason: fmt.Sprintf("loader: reading .text: %v", err)}
	}
	return Program{
		Insts: insts,
		Start: int(sec.Addr),
		Entry: int(f.Entry),
	}, nil
}

func disassemble(objdump string) (string, error) {
	cmd := exec.Command(objdump, "-d", elfOutput, "-M", "numeric")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", CollaboratorError{Reason: strings.TrimRight(stderr.String(), "\n")}
		}
		return "", CollaboratorError{Reason: fmt.Sprintf("loader: failed to use objdump %s: %v", objdump, err)}
	}
	out := stdout.String()
	pos := strings.Index(out, textDisassemblyMarker)
	if pos < 0 {
		return "", CollaboratorError{Reason: "loader: objdump output missing .text disassembly"}
	}
	return out[pos+len(textDisassemblyMarker):], nil
}

// AsmLines splits an objdump .text disassembly body into one
// trimmed-of-indentation line per instruction word (address, hex
// encoding and mnemonic, as objdump prints them), in address order, suitable for feeding pipeline.NewRv32i's asmTable. It
// tolerates blank lines and the section's leading address/label lines,
// keeping only the instruction-encoding lines objdump emits per word.
func AsmLines(asm string) []string {
	var lines []string
	for _, raw := range strings.Split(asm, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
