package opcode_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"optab/internal/opcode"
)

func rule(name string) opcode.Rule {
	for _, r := range opcode.Rules() {
		if r.Name == name {
			return r
		}
	}
	Fail("no rule named " + name)
	return opcode.Rule{}
}

var _ = Describe("Rules", func() {
	It("should run in a fixed order", func() {
		var names []string
		for _, r := range opcode.Rules() {
			names = append(names, r.Name)
		}
		Expect(names).To(Equal([]string{
			"rex.w", "byte-pairs", "size-suffix", "register-in-opcode", "trailing-columns",
			"subcode", "lowercase", "operands", "commas", "reorder",
		}))
	})

	It("should hand out a copy of the chain", func() {
		rs := opcode.Rules()
		rs[0] = opcode.Rule{Name: "changed"}
		Expect(opcode.Rules()[0].Name).To(Equal("rex.w"))
	})

	DescribeTable("single rules",
		func(name, in, want string) {
			Expect(rule(name).Apply(in)).To(Equal(want))
		},
		Entry("REX.W prefix becomes w", "rex.w", "REX.W + 05 id", "w05 id"),
		Entry("byte pairs are joined", "byte-pairs", "0F 38 F0 /r MOVBE r16", "0F38F0 /r MOVBE r16"),
		Entry("lower-case hex is not a byte pair", "byte-pairs", "C7 F8 cw X", "C7F8 cw X"),
		Entry("size suffixes are stripped", "size-suffix", "80/0 ib ADD r/m8 /rb cd x id ", "80/0 ADD r/m8 x "),
		Entry("register-in-opcode is stripped", "register-in-opcode", "B8+ rd id MOV 50+ rw 40+ rb", "B8 id MOV 50 40"),
		Entry("trailing columns are cut", "trailing-columns", "01/r ADD r/m32, r32 MR Valid Valid Add.", "01/r A"),
		Entry("a run needs a following space", "trailing-columns", "C3 RET", "C3 RET"),
		Entry("subcode spacing is joined", "subcode", "FF /2 CALL r/m64 /r x", "FF/2 CALL r/m64 /r x"),
		Entry("lowercase", "lowercase", "ADD EAX", "add eax"),
		Entry("commas are removed", "commas", "add MC, RC,", "add MC RC"),
		Entry("leading token moves to the end", "reorder", "w81/0 add MD IC", "add MD ICw81/0"),
		Entry("no space means no reorder", "reorder", "nop", "nop"),
		Entry("only a hex token followed by a space moves", "reorder", "mov RA IA b0", "mov RA IA b0"),
	)

	Describe("ReplaceOperands", func() {
		It("should apply the table in order", func() {
			Expect(opcode.ReplaceOperands("add r/m32, r32")).To(Equal("add MC, RC"))
			Expect(opcode.ReplaceOperands("eax rax al ax cl")).To(Equal("0C 0D 0A 0B 1A"))
			Expect(opcode.ReplaceOperands("rel8 rel16 rel32 rel64")).To(Equal("IA IB IC ID"))
			Expect(opcode.ReplaceOperands("sal MA, 1")).To(Equal("s0A MA, L1"))
		})

		It("should replace inside longer tokens", func() {
			Expect(opcode.ReplaceOperands("call")).To(Equal("c0Al"))
		})

		It("should leave its own codes alone", func() {
			once := opcode.ReplaceOperands("mov r/m32, r32, imm32, eax")
			Expect(opcode.ReplaceOperands(once)).To(Equal(once))
			Expect(opcode.ReplaceOperands("RC")).To(Equal("RC"))
		})
	})

	DescribeTable("Normalize",
		func(in, want string) {
			Expect(opcode.Normalize(in)).To(Equal(want))
		},
		Entry(nil, "05 id ADD EAX, imm32 I Valid Valid Add imm32 to EAX.", "idadd0C IC 05"),
		Entry(nil, "REX.W + 81 /0 id ADD r/m64, imm32 MI Valid N.E. Add imm32 sign-extended to 64-bits to r/m64.", "idaw81/0"),
		Entry(nil, "80 /0 ib ADD r/m8, imm8 MI Valid Valid Add imm8 to r/m8.", "iba80/0"),
		Entry(nil, "B8+ rd id MOV r32, imm32 OI Valid Valid Move imm32 to r32.", "b8+ mov RC IC o"),
		Entry(nil, "05 ADD EAX, imm32", "05add0C IC"),
		Entry(nil, "A8 ib TEST AL, imm8", "test 0A IAa8"),
		Entry(nil, "48 DEC r16", "RB48dec"),
		Entry("plain row is only lowercased and reordered", "90 NOP", "nop90"),
	)
})
