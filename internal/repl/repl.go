// Package repl implements the interactive console over the contact
// book. Every command error is printed and the session continues; only
// exit, quit, or EOF end the loop.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"assistant/internal/book"
	"assistant/internal/domain/contact"
)

const prompt = ">> "

const helpText = `commands:
  add <name> | [address] | [phones, comma-separated] | [email] | [birthday]
  search <query>
  show
  edit <name> | <field> | <value>        (fields: name, address, email, birthday, phones)
  delete <name>
  birthdays [days]
  help
  exit | quit`

type REPL struct {
	book *book.Book
	in   io.Reader
	out  io.Writer
}

func New(b *book.Book, in io.Reader, out io.Writer) *REPL {
	return &REPL{book: b, in: in, out: out}
}

func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Welcome to Personal Assistant!")

	sc := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, args := parseCommand(sc.Text())
		switch cmd {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprintln(r.out, helpText)
		case "add":
			r.add(ctx, args)
		case "search":
			r.search(args)
		case "show":
			r.list(r.book.Contacts())
		case "edit":
			r.edit(ctx, args)
		case "delete":
			r.delete(ctx, args)
		case "birthdays":
			r.birthdays(args)
		default:
			fmt.Fprintf(r.out, "Unknown command %q, try \"help\".\n", cmd)
		}
	}
}

// parseCommand splits the command word from its argument tail.
func parseCommand(line string) (cmd, args string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	cmd, args, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// splitFields splits pipe-separated command arguments, trimming each
// part: "John | Main St | 123456789" -> ["John", "Main St", "123456789"].
func splitFields(args string) []string {
	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (r *REPL) add(ctx context.Context, args string) {
	fields := splitFields(args)
	if fields[0] == "" {
		fmt.Fprintln(r.out, "Usage: add <name> | [address] | [phones] | [email] | [birthday]")
		return
	}
	// pad to the full field set
	for len(fields) < 5 {
		fields = append(fields, "")
	}

	var phones []string
	if fields[2] != "" {
		phones = strings.Split(fields[2], ",")
	}

	c := contact.New(fields[0], fields[1], phones, fields[3], fields[4])
	if err := r.book.Add(ctx, c); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Contact %q added.\n", c.Name)
}

func (r *REPL) search(query string) {
	matches := r.book.Search(query)
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "Nothing found.")
		return
	}
	r.list(matches)
}

func (r *REPL) list(contacts []*contact.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(r.out, "The book is empty.")
		return
	}
	for _, c := range contacts {
		line := c.Name
		if len(c.Phones) > 0 {
			line += " | " + strings.Join(c.Phones, ", ")
		}
		if c.Email != "" {
			line += " | " + c.Email
		}
		if c.Birthday != "" {
			line += " | " + c.Birthday
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *REPL) edit(ctx context.Context, args string) {
	fields := splitFields(args)
	if len(fields) < 3 || fields[0] == "" || fields[1] == "" {
		fmt.Fprintln(r.out, "Usage: edit <name> | <field> | <value>")
		return
	}
	name, field, value := fields[0], fields[1], strings.Join(fields[2:], "|")

	op, err := contact.ParseEdit(field, value)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if err := r.book.Edit(ctx, name, op); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Contact %q updated.\n", name)
}

func (r *REPL) delete(ctx context.Context, name string) {
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(r.out, "Usage: delete <name>")
		return
	}
	if err := r.book.Delete(ctx, name); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Contact %q deleted.\n", strings.TrimSpace(name))
}

func (r *REPL) birthdays(args string) {
	days := 7
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 0 {
			fmt.Fprintln(r.out, "Usage: birthdays [days], days must be a non-negative integer")
			return
		}
		days = n
	}

	matches := r.book.UpcomingBirthdays(days)
	if len(matches) == 0 {
		fmt.Fprintf(r.out, "No birthdays in the next %d day(s).\n", days)
		return
	}
	r.list(matches)
}
