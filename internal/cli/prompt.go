package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{reader: bufio.NewReader(in), out: out}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// maxChoices is the number of choices that can be given a letter.
const maxChoices = 26

// answer asks for a choice letter until a valid one is given and returns its index.
// With no options there is nothing to pick and -1 is returned. Only the first
// maxChoices options can be picked.
func (p *prompter) answer(optionCount int) (int, error) {
	if optionCount < 1 {
		return -1, nil
	}
	if optionCount > maxChoices {
		optionCount = maxChoices
	}
	maxLetter := byte('A' + optionCount - 1)
	for {
		line, err := p.line(fmt.Sprintf("Your answer (A-%c): ", maxLetter))
		if err != nil {
			return -1, err
		}
		answer := strings.ToUpper(line)
		if len(answer) == 1 && answer[0] >= 'A' && answer[0] <= maxLetter {
			return int(answer[0] - 'A'), nil
		}
		fmt.Fprintf(p.out, "Please enter a letter between A and %c.\n", maxLetter)
	}
}

func (p *prompter) yesNo(prompt string) (bool, error) {
	for {
		line, err := p.line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(p.out, "Please answer yes or no.")
		}
	}
}

// choiceLetter labels the i-th choice; choices past Z get their 1-based number.
func choiceLetter(i int) string {
	if i >= maxChoices {
		return strconv.Itoa(i + 1)
	}
	return string(rune('A' + i))
}
