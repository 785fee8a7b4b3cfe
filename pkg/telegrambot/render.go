package telegrambot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"shop-tg-bot/internal/callbacks"
	"shop-tg-bot/internal/delivery"
	"shop-tg-bot/internal/engine"
)

// Quantities offered on a product card.
var productAmounts = []int{1}

// Render implements engine.Renderer on top of Telegram messages.
func (b *Bot) Render(ctx context.Context, userID int64, view engine.View) error {
	b.rendered.Store(userID, struct{}{})

	switch v := view.(type) {
	case engine.CatalogView:
		return b.renderCatalog(userID, v)
	case engine.ProductView:
		return b.renderProduct(userID, v)
	case engine.CartView:
		return b.renderCart(userID, v)
	case engine.LocationPromptView:
		if v.Retry {
			return b.sendText(userID, "Sorry, I could not find that address. Please try another one or share your location.", nil)
		}
		return b.sendText(userID, "Please send your address or share your location:", nil)
	case engine.EmailPromptView:
		if v.Retry {
			return b.sendText(userID, "That does not look like an email. Please try again:", nil)
		}
		return b.sendText(userID, "Please enter your email:", nil)
	case engine.ThanksView:
		return b.sendText(userID, "Thank you a lot! We will contact you soon.", nil)
	case engine.DeliveryView:
		return b.renderDelivery(userID, v)
	default:
		return fmt.Errorf("unknown view type %T", view)
	}
}

func (b *Bot) renderCatalog(userID int64, view engine.CatalogView) error {
	var keyboard [][]telebot.InlineButton
	for _, product := range view.Products {
		keyboard = append(keyboard, []telebot.InlineButton{
			{Text: product.Name, Data: product.ID},
		})
	}

	var navigation []telebot.InlineButton
	if view.HasPrev {
		navigation = append(navigation, telebot.InlineButton{Text: "<<<", Data: callbacks.PreviousPage})
	}
	if view.HasNext {
		navigation = append(navigation, telebot.InlineButton{Text: ">>>", Data: callbacks.NextPage})
	}
	if len(navigation) > 0 {
		keyboard = append(keyboard, navigation)
	}

	return b.sendText(userID, "*Please select a product:*", &telebot.ReplyMarkup{InlineKeyboard: keyboard})
}

func (b *Bot) renderProduct(userID int64, view engine.ProductView) error {
	caption := fmt.Sprintf(
		"*%s*\n\n*Price*: %s\n*Availability*: %d %s\n\n%s\n",
		view.Product.Name,
		view.Product.FormattedPrice,
		view.Product.StockLevel,
		view.Product.StockAvailability,
		view.Product.Description,
	)
	if view.InCartQuantity > 0 {
		caption += fmt.Sprintf("\n*In cart*: %d\n", view.InCartQuantity)
	}

	var amountButtons []telebot.InlineButton
	for _, amount := range productAmounts {
		amountButtons = append(amountButtons, telebot.InlineButton{
			Text: fmt.Sprintf("Add %d", amount),
			Data: callbacks.EncodeAddToCart(view.Product.ID, amount),
		})
	}
	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			amountButtons,
			{{Text: "Back to menu", Data: callbacks.BackToMenu}},
			{{Text: "Show cart", Data: callbacks.ShowCart}},
		},
	}

	if view.ImageURL == "" {
		return b.sendText(userID, caption, markup)
	}

	photo := &telebot.Photo{
		File:    telebot.FromURL(view.ImageURL),
		Caption: caption,
	}
	_, err := b.bot.Send(recipient(userID), photo, &telebot.SendOptions{
		ParseMode:   telebot.ModeMarkdown,
		ReplyMarkup: markup,
	})
	if err != nil {
		b.logger.Errorf("Failed to send product card: %v", err)
	}
	return err
}

func (b *Bot) renderCart(userID int64, view engine.CartView) error {
	var text strings.Builder
	text.WriteString("*Items in cart*:\n")

	var keyboard [][]telebot.InlineButton
	for _, line := range view.Lines {
		fmt.Fprintf(&text,
			"*%s*\n*Price per unit*: %s\n*Quantity*: %d\n%s\n\n",
			line.Name, line.FormattedPrice, line.Quantity, line.Description,
		)
		keyboard = append(keyboard, []telebot.InlineButton{
			{Text: fmt.Sprintf("Remove %s", line.Name), Data: line.ID},
		})
	}
	fmt.Fprintf(&text, "*Total price*: %s", view.Cart.FormattedPrice)

	keyboard = append(keyboard,
		[]telebot.InlineButton{{Text: "Checkout", Data: callbacks.Checkout}},
		[]telebot.InlineButton{{Text: "Back to menu", Data: callbacks.BackToMenu}},
	)

	return b.sendText(userID, text.String(), &telebot.ReplyMarkup{InlineKeyboard: keyboard})
}

func (b *Bot) renderDelivery(userID int64, view engine.DeliveryView) error {
	shopName := view.Shop.Alias
	if shopName == "" {
		shopName = view.Shop.Address
	}

	switch view.Tier {
	case delivery.TierPickup:
		text := fmt.Sprintf(
			"You are only %.0f m away from *%s* (%s). Pickup or delivery is free!",
			view.DistanceMeters, shopName, view.Shop.Address,
		)
		if err := b.sendText(userID, text, nil); err != nil {
			return err
		}
		return b.sendShopQR(userID, view)
	case delivery.TierNear, delivery.TierFar:
		return b.sendText(userID, fmt.Sprintf(
			"The nearest shop is *%s*, %.0f m away. Delivery will cost %d RUB.",
			shopName, view.DistanceMeters, view.Tier.FeeRub(),
		), nil)
	default:
		return b.sendText(userID, fmt.Sprintf(
			"Unfortunately you are %.1f km away from the nearest shop, we cannot deliver that far.",
			view.DistanceMeters/1000,
		), nil)
	}
}

// sendShopQR sends a QR code with a map link to the pickup shop.
func (b *Bot) sendShopQR(userID int64, view engine.DeliveryView) error {
	mapLink := fmt.Sprintf("https://yandex.ru/maps/?pt=%f,%f&z=17", view.Shop.Longitude, view.Shop.Latitude)

	qrBytes, err := b.qrService.GenerateQR(mapLink)
	if err != nil {
		return err
	}

	photo := &telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(qrBytes)),
		Caption: "Scan to open the shop on the map",
	}
	if _, err := b.bot.Send(recipient(userID), photo); err != nil {
		b.logger.Errorf("Failed to send shop QR code: %v", err)
		return err
	}
	return nil
}

// sendText sends a markdown message with an optional inline keyboard
func (b *Bot) sendText(userID int64, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeMarkdown,
	}
	if markup != nil {
		opts.ReplyMarkup = markup
	}

	if _, err := b.bot.Send(recipient(userID), text, opts); err != nil {
		b.logger.Errorf("Failed to send message: %v", err)
		return err
	}
	return nil
}

func recipient(userID int64) *telebot.User {
	return &telebot.User{ID: userID}
}
