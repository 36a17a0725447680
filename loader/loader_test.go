package loader

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/go-test/deep"
)

// buildElf assembles a minimal little-endian 32-bit ELF with a single
// .text section (plus the headers/shstrtab objdump's real output would
// also carry), enough for parseElf to exercise without a real
// toolchain.
func buildElf(t *testing.T, text []byte, addr, entry uint32) []byte {
	t.Helper()

	const (
		ehsize    = 52
		shsize    = 40
		shstrtab  = "\x00.text\x00.shstrtab\x00"
		textName  = 1
		shstrName = 7
	)

	textOff := uint32(ehsize)
	shstrOff := textOff + uint32(len(text))
	shOff := shstrOff + uint32(len(shstrtab))

	var buf bytes.Buffer
	hdr := elf.Header32{
		Ident:     [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', 1, 1, 1},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   1,
		Entry:     entry,
		Shoff:     shOff,
		Ehsize:    ehsize,
		Shentsize: shsize,
		Shnum:     3,
		Shstrndx:  2,
	}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatalf("writing ELF header: %v", err)
	}
	buf.Write(text)
	buf.WriteString(shstrtab)

	sections := []elf.Section32{
		{}, // SHN_UNDEF
		{
			Name: textName, Type: uint32(elf.SHT_PROGBITS),
			Addr: addr, Off: textOff, Size: uint32(len(text)),
		},
		{
			Name: shstrName, Type: uint32(elf.SHT_STRTAB),
			Off: shstrOff, Size: uint32(len(shstrtab)),
		},
	}
	for _, sh := range sections {
		if err := binary.Write(&buf, binary.LittleEndian, sh); err != nil {
			t.Fatalf("writing section header: %v", err)
		}
	}
	return buf.Bytes()
}

func TestParseElfExtractsTextAndEntry(t *testing.T) {
	text := []byte{0x13, 0x05, 0x50, 0x00, 0x73, 0x00, 0x00, 0x00} // addi x10,x0,5; ecall
	dat := buildElf(t, text, 0x1000, 0x1000)

	pg, err := parseElf(dat)
	if err != nil {
		t.Fatalf("parseElf: %v", err)
	}
	want := Program{Insts: text, Start: 0x1000, Entry: 0x1000}
	if diff := deep.Equal(pg, want); diff != nil {
		t.Errorf("parseElf result mismatch: %v", diff)
	}
}

func TestParseElfNotAnElfFile(t *testing.T) {
	if _, err := parseElf([]byte("not an elf")); err == nil {
		t.Fatal("expected an error for non-ELF input")
	} else if _, ok := err.(CollaboratorError); !ok {
		t.Errorf("expected CollaboratorError, got %T", err)
	}
}

func TestParseElfMissingTextSection(t *testing.T) {
	const ehsize, shsize = 52, 40
	shstrtab := "\x00.shstrtab\x00"
	shOff := uint32(ehsize) + uint32(len(shstrtab))

	var buf bytes.Buffer
	hdr := elf.Header32{
		Ident:     [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', 1, 1, 1},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   1,
		Shoff:     shOff,
		Ehsize:    ehsize,
		Shentsize: shsize,
		Shnum:     2,
		Shstrndx:  1,
	}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatalf("writing ELF header: %v", err)
	}
	buf.WriteString(shstrtab)
	sections := []elf.Section32{
		{},
		{Name: 1, Type: uint32(elf.SHT_STRTAB), Off: uint32(ehsize), Size: uint32(len(shstrtab))},
	}
	for _, sh := range sections {
		if err := binary.Write(&buf, binary.LittleEndian, sh); err != nil {
			t.Fatalf("writing section header: %v", err)
		}
	}

	if _, err := parseElf(buf.Bytes()); err == nil {
		t.Fatal("expected an error for a missing .text section")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	if _, err := Load(Config{}); err == nil {
		t.Fatal("expected an error when no source file is given")
	}
}

func TestAsmLinesSkipsBlanksAndLabels(t *testing.T) {
	asm := "\n0000000000001000 <_start>:\n" +
		"   1000:\t13 05 50 00          \taddi\tx10,x0,5\n" +
		"   1004:\t73 00 00 00          \tecall\n\n"
	got := AsmLines(asm)
	want := []string{
		"1000:\t13 05 50 00          \taddi\tx10,x0,5",
		"1004:\t73 00 00 00          \tecall",
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("AsmLines mismatch: %v", diff)
	}
}
