package bot

import (
	"context"
	"strings"
	"time"

	"github.com/disgoorg/disgo"
	disgobot "github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ajdsjdasjh123sd/linkgate/internal/config"
	"github.com/ajdsjdasjh123sd/linkgate/internal/issuer"
	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
	"github.com/ajdsjdasjh123sd/linkgate/internal/payload"
	"github.com/ajdsjdasjh123sd/linkgate/internal/slugapi"
)

// connectButtonID identifies the verification button across restarts, so it
// must never change once messages carrying it exist.
const connectButtonID = "linkgate:connect"

// issueTimeout bounds link issuance, which may call the slug service.
const issueTimeout = 15 * time.Second

// Bot posts verification prompts and answers button presses with personalized,
// time-limited links. Each press gets a fresh link scoped to that user.
type Bot struct {
	client    disgobot.Client
	logger    logger.Logger
	templates *Templates
	issuer    *issuer.Issuer
}

// New wires the Discord client, the link issuer and the message templates.
func New(cfg *config.BotConfig, log logger.Logger) (*Bot, error) {
	templates, err := LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}

	var registrar issuer.SlugRegistrar
	if cfg.SlugServiceEnabled {
		registrar = slugapi.New(cfg.SlugServiceOrigin, cfg.SlugTimeout)
	}

	b := &Bot{
		logger:    log,
		templates: templates,
		issuer: issuer.New(issuer.Config{
			BaseURL:          cfg.LinkBaseURL,
			AppendRenderPath: cfg.AppendRenderPath,
			ExpiryMinutes:    cfg.LinkExpiryMins,
			Slugs:            registrar,
		}, log),
	}

	client, err := disgo.New(cfg.DiscordToken,
		disgobot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
			),
		),
		disgobot.WithEventListeners(&events.ListenerAdapter{
			OnMessageCreate:        b.handleMessage,
			OnComponentInteraction: b.handleComponentInteraction,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting Discord bot")
	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("closing Discord bot")
	b.client.Close(ctx)
}

// handleMessage posts the verification prompt when the trigger is typed.
func (b *Bot) handleMessage(event *events.MessageCreate) {
	if event.Message.Author.Bot || event.GuildID == nil {
		return
	}
	if strings.TrimSpace(event.Message.Content) != b.templates.Verify.Trigger {
		return
	}

	community := b.guildName(*event.GuildID)
	embed := discord.NewEmbedBuilder().
		SetTitle(b.templates.Verify.Title).
		SetDescription(Expand(b.templates.Verify.Description, community, event.Message.Author.Username, 0)).
		SetColor(b.templates.Verify.Color).
		Build()

	_, err := event.Client().Rest().CreateMessage(event.ChannelID, discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		AddActionRow(discord.NewPrimaryButton(b.templates.Verify.ButtonLabel, connectButtonID)).
		Build())
	if err != nil {
		b.logger.Error("failed to post verification prompt", logger.Error(err))
	}
}

// handleComponentInteraction issues a personal link when the verification
// button is pressed. The response is ephemeral: the link is for one user.
func (b *Bot) handleComponentInteraction(event *events.ComponentInteractionCreate) {
	if event.Data.CustomID() != connectButtonID {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), issueTimeout)
		defer cancel()

		if err := event.DeferCreateMessage(true); err != nil {
			b.logger.Error("failed to defer interaction", logger.Error(err))
			return
		}

		if event.GuildID() == nil {
			b.respond(event, discord.NewMessageUpdateBuilder().
				SetContent(b.templates.Errors.GuildOnly).
				Build())
			return
		}

		link, err := b.issuer.Issue(ctx, b.linkContext(event))
		if err != nil {
			b.logger.Error("link issuance failed", logger.Error(err))
			b.respond(event, discord.NewMessageUpdateBuilder().
				SetContent(b.templates.Errors.IssueFailed).
				Build())
			return
		}

		user := event.User()
		b.logger.Info("link issued",
			logger.String("user_id", user.ID.String()),
			logger.String("guild_id", event.GuildID().String()),
			logger.Time("expires_at", link.ExpiresAt))

		minutes := int(time.Until(link.ExpiresAt).Round(time.Minute) / time.Minute)
		b.respond(event, discord.NewMessageUpdateBuilder().
			SetContent(Expand(b.templates.Link.Message, b.guildName(*event.GuildID()), user.Username, minutes)).
			AddActionRow(discord.NewLinkButton(b.templates.Link.ButtonLabel, link.URL)).
			Build())
	}()
}

// linkContext gathers everything the landing page can personalize on. Hashes
// ride along so the page can rebuild CDN URLs if the full ones get shrunk out.
func (b *Bot) linkContext(event *events.ComponentInteractionCreate) payload.Context {
	user := event.User()
	guildID := *event.GuildID()

	ctx := payload.Context{
		UserName:      user.Username,
		UserID:        user.ID.String(),
		GuildID:       guildID.String(),
		CommunityID:   guildID.String(),
		InteractionID: event.ID().String(),
		AvatarURL:     user.EffectiveAvatarURL(),
		CommunityName: b.guildName(guildID),
	}
	if user.Avatar != nil {
		ctx.AvatarHash = *user.Avatar
	}

	if guild, ok := event.Client().Caches().Guild(guildID); ok {
		if guild.Icon != nil {
			ctx.GuildIconHash = *guild.Icon
		}
		if iconURL := guild.IconURL(); iconURL != nil {
			ctx.GuildIconURL = *iconURL
		}
	}
	return ctx
}

// guildName resolves a guild's display name, preferring the gateway cache and
// falling back to a REST lookup.
func (b *Bot) guildName(guildID snowflake.ID) string {
	if guild, ok := b.client.Caches().Guild(guildID); ok {
		return guild.Name
	}
	if guild, err := b.client.Rest().GetGuild(guildID, false); err == nil {
		return guild.Name
	}
	return "this server"
}

func (b *Bot) respond(event *events.ComponentInteractionCreate, update discord.MessageUpdate) {
	_, err := event.Client().Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(), update)
	if err != nil {
		b.logger.Error("failed to update interaction response", logger.Error(err))
	}
}
