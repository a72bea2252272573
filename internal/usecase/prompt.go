package usecase

import "fmt"

// selfTestPrompt is sent once at startup to verify the provider is reachable
const selfTestPrompt = "test"

const cleaningPromptTemplate = `Extract only the essential product information from this title.

Remove: promotional text, warranty info, shipping info, seller info, PTA approved, official warranty, cash on delivery, installment, sealed, original, authentic, new, limited stock, sale, discount, special offer, hot deal.

Keep: brand, model, RAM, storage, screen size, processor, color (only if important).

Title: %s

Return ONLY the cleaned product name with key specs in this exact format:
Brand Model RAM Storage

Examples:
- Input: "Samsung Galaxy A15 8GB/256GB PTA Approved Official Warranty Fast Shipping"
  Output: "Samsung Galaxy A15 8GB 256GB"

- Input: "iPhone 13 Pro Max 256GB Factory Unlocked Original Apple Warranty"
  Output: "iPhone 13 Pro Max 256GB"

- Input: "HP Pavilion Gaming Laptop i5 11th Gen 8GB RAM 512GB SSD"
  Output: "HP Pavilion Gaming i5 11th Gen 8GB 512GB"

Now clean this title (reply with ONLY the cleaned version, no explanation):`

// buildCleaningPrompt embeds a raw title into the fixed cleaning prompt
func buildCleaningPrompt(title string) string {
	return fmt.Sprintf(cleaningPromptTemplate, title)
}

// SampleTitles are representative marketplace listings used by the self-test
var SampleTitles = []string{
	"Samsung Galaxy A15 8GB/256GB PTA Approved Official Warranty Fast Shipping",
	"iPhone 13 Pro Max 256GB Factory Unlocked Original Apple Warranty Cash on Delivery",
	"HP Pavilion Gaming Laptop i5 11th Gen 8GB RAM 512GB SSD Official Warranty",
	"Xiaomi Redmi Note 12 Pro 5G 8GB+256GB Global Version PTA Approved",
}
