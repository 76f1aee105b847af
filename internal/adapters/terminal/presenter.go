package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"file-manager-client/internal/domain"
)

const (
	iconFolder = "📁"
	iconFile   = "📄"
)

// Presenter печатает листинг и ошибки в терминал.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

func NewPresenter(out, errOut io.Writer) *Presenter {
	return &Presenter{out: out, err: errOut}
}

// Render каждый вызов полностью заменяет предыдущий вывод листинга.
func (p *Presenter) Render(instructions []domain.RenderInstruction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for _, in := range instructions {
		b.WriteString(FormatInstruction(in))
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(p.out, b.String()); err != nil {
		logrus.Warnf("Failed to render listing: %v", err)
	}
}

// FormatInstruction одна строка вывода для инструкции.
func FormatInstruction(in domain.RenderInstruction) string {
	switch in.Kind {
	case domain.RenderHeader:
		return "Current path: " + in.Label
	case domain.RenderBack:
		return "  " + iconFolder + " " + in.Label
	case domain.RenderFolder:
		return "  " + iconFolder + " " + in.Label + "/"
	case domain.RenderFile:
		var actions []string
		for _, a := range in.Actions {
			actions = append(actions, "["+string(a)+"]")
		}
		return "  " + iconFile + " " + in.Label + "  " + strings.Join(actions, " ")
	default:
		return "  " + in.Label
	}
}

func (p *Presenter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.err, "! %s\n", message)
}

// ResetInput в терминале полей ввода нет, каждая команда вводится заново.
func (p *Presenter) ResetInput(field domain.InputField) {
	logrus.Debugf("Input %s reset", field)
}

// Println вывод служебных сообщений шелла.
func (p *Presenter) Println(a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

// Confirmer спрашивает y/N из того же потока ввода, что и шелл.
type Confirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConfirmer(in *bufio.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

func (c *Confirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
