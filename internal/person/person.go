// Package person models people with ages, one-directional friendships and
// hobbies, plus an in-memory directory that hands out identifiers.
package person

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// AdultAge is the age from which IsAdult reports true.
const AdultAge = 18

// Person is not safe for concurrent use.
type Person struct {
	firstName string
	lastName  string
	age       int
	friends   []*Person
	hobbies   []string
}

// New returns a person with no friends and no hobbies.
func New(firstName, lastName string, age int) (*Person, error) {
	if age < 0 {
		return nil, ErrNegativeAge
	}
	return &Person{firstName: firstName, lastName: lastName, age: age}, nil
}

func (p *Person) FirstName() string { return p.firstName }
func (p *Person) LastName() string  { return p.lastName }

// FullName returns "First Last".
func (p *Person) FullName() string {
	return p.firstName + " " + p.lastName
}

// Initials returns "F.L." from the first rune of each name.
func (p *Person) Initials() string {
	return firstRune(p.firstName) + "." + firstRune(p.lastName) + "."
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}

func (p *Person) Age() int { return p.age }

func (p *Person) SetAge(age int) error {
	if age < 0 {
		return ErrNegativeAge
	}
	p.age = age
	return nil
}

func (p *Person) IsAdult() bool {
	return p.age >= AdultAge
}

// AddFriend records friend as a friend of p. Friendship is one-directional
// and adding an existing friend again is a no-op.
func (p *Person) AddFriend(friend *Person) error {
	if friend == nil {
		return ErrInvalidFriend
	}
	if friend == p {
		return ErrSelfFriend
	}
	if !p.IsFriend(friend) {
		p.friends = append(p.friends, friend)
	}
	return nil
}

func (p *Person) RemoveFriend(friend *Person) {
	if i := slices.Index(p.friends, friend); i >= 0 {
		p.friends = slices.Delete(p.friends, i, i+1)
	}
}

// Friends returns a copy of the friend list in the order friends were added.
func (p *Person) Friends() []*Person {
	return slices.Clone(p.friends)
}

func (p *Person) FriendCount() int {
	return len(p.friends)
}

func (p *Person) IsFriend(other *Person) bool {
	return other != nil && slices.Contains(p.friends, other)
}

// AddHobby stores the trimmed hobby. Duplicates are ignored.
func (p *Person) AddHobby(hobby string) error {
	hobby = strings.TrimSpace(hobby)
	if hobby == "" {
		return ErrEmptyHobby
	}
	if !slices.Contains(p.hobbies, hobby) {
		p.hobbies = append(p.hobbies, hobby)
	}
	return nil
}

// RemoveHobby removes an exact match. Unknown hobbies are ignored.
func (p *Person) RemoveHobby(hobby string) {
	if i := slices.Index(p.hobbies, hobby); i >= 0 {
		p.hobbies = slices.Delete(p.hobbies, i, i+1)
	}
}

func (p *Person) Hobbies() []string {
	return slices.Clone(p.hobbies)
}

func (p *Person) HasHobby(hobby string) bool {
	return slices.Contains(p.hobbies, hobby)
}

// Greet returns a greeting for other that is warmer for friends.
func (p *Person) Greet(other *Person) string {
	switch {
	case other == nil:
		return "Hello, stranger!"
	case p.IsFriend(other):
		return fmt.Sprintf("Hey %s! How are you doing?", other.firstName)
	default:
		return fmt.Sprintf("Hello, %s. Nice to meet you!", other.FullName())
	}
}

// Introduce returns a self-introduction mentioning age and hobbies when known.
func (p *Person) Introduce() string {
	var b strings.Builder
	b.WriteString("Hi, I'm ")
	b.WriteString(p.FullName())
	if p.age > 0 {
		fmt.Fprintf(&b, " and I'm %d years old", p.age)
	}
	if len(p.hobbies) > 0 {
		b.WriteString(". I enjoy ")
		b.WriteString(strings.Join(p.hobbies, ", "))
	}
	b.WriteString(".")
	return b.String()
}

func (p *Person) String() string {
	return fmt.Sprintf("Person: %s, Age: %d", p.FullName(), p.age)
}
