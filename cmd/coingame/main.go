// Coin game: enter a number of pennies, nickels, dimes and quarters that
// add up to exactly one dollar. Totals are kept in cents so comparisons
// stay exact.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("Enter the number of each coin type:")
		pennies := readCount(in, "Number of pennies: ")
		nickels := readCount(in, "Number of nickels: ")
		dimes := readCount(in, "Number of dimes: ")
		quarters := readCount(in, "Number of quarters: ")

		cents := pennies + nickels*5 + dimes*10 + quarters*25
		switch {
		case cents == 100:
			fmt.Println("Congratulations! You won the game!")
			return
		case cents < 100:
			fmt.Printf("The total amount $%.2f is less than $1.00. Try again.\n\n", float64(cents)/100)
		default:
			fmt.Printf("The total amount $%.2f is more than $1.00. Try again.\n\n", float64(cents)/100)
		}
	}
}

func readCount(in *bufio.Reader, prompt string) int {
	for {
		fmt.Print(prompt)
		line, err := in.ReadString('\n')
		if err != nil {
			fmt.Println()
			os.Exit(0)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 {
			fmt.Println("Please enter a non-negative whole number.")
			continue
		}
		return n
	}
}
