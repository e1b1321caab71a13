// Package jason wires a typed configuration into a runnable service.
//
// A Service pairs a config.Definition with a setup callback. Run loads the
// config, builds an App, lets the callback register routes and
// integrations, then serves HTTP and runs consumers until the context ends:
//
//	var def = config.Define("billing", []props.Field{
//		props.Named("INVOICE_PREFIX", props.String(props.Default("INV"))),
//	}, config.ServiceMixin, config.PostgresMixin)
//
//	svc := jason.NewService(def, func(app *jason.App, debug bool) error {
//		pool, err := app.InitPostgres(context.Background())
//		if err != nil {
//			return err
//		}
//		app.Router().Post("/invoices", binder.Handler(invoiceSchema, app.Logger(), createInvoice(pool)))
//		return nil
//	})
//	if err := svc.Run(ctx, jason.RunOptions{}); err != nil {
//		log.Fatal(err)
//	}
//
// Every Init method checks that the config includes the mixin it reads and
// fails with a config.MixinError before touching the network.
package jason
