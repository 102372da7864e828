package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
// The caller wipes the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// Confirm asks a yes/no question; anything but y/yes is a no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// fieldPrompter asks for each property field in turn. With a non-nil
// current value an empty answer keeps the existing field.
type fieldPrompter struct {
	reader *bufio.Reader
	w      io.Writer
}

func (fp fieldPrompter) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(fp.reader, prompt, fp.w)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// PromptFields collects PropertyFields. current may be nil for a new property.
func PromptFields(reader *bufio.Reader, w io.Writer, current *models.PropertyFields) (models.PropertyFields, error) {
	fp := fieldPrompter{reader: reader, w: w}
	var def [6]string
	if current != nil {
		def = [6]string{
			current.Address,
			current.TenantName,
			current.RentAmount.StringFixed(2),
			strconv.Itoa(current.DueDay),
			current.ContractStart.Format(common.DateLayout),
			current.ContractEnd.Format(common.DateLayout),
		}
	}

	var f models.PropertyFields
	var err error

	if f.Address, err = fp.ask("Address", def[0]); err != nil {
		return f, err
	}
	if f.TenantName, err = fp.ask("Tenant name", def[1]); err != nil {
		return f, err
	}

	rent, err := fp.ask("Monthly rent", def[2])
	if err != nil {
		return f, err
	}
	if f.RentAmount, err = decimal.NewFromString(rent); err != nil {
		return f, fmt.Errorf("rent %q is not a number", rent)
	}

	due, err := fp.ask("Due day (1-31)", def[3])
	if err != nil {
		return f, err
	}
	if f.DueDay, err = strconv.Atoi(due); err != nil {
		return f, fmt.Errorf("due day %q is not a number", due)
	}

	if f.ContractStart, err = fp.askDate("Contract start (YYYY-MM-DD)", def[4]); err != nil {
		return f, err
	}
	if f.ContractEnd, err = fp.askDate("Contract end (YYYY-MM-DD)", def[5]); err != nil {
		return f, err
	}

	return f, f.Validate()
}

func (fp fieldPrompter) askDate(label, current string) (time.Time, error) {
	v, err := fp.ask(label, current)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(common.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", v)
	}
	return d, nil
}
